package core

import (
	"fmt"

	"Draughts/game/obslog"

	"go.uber.org/zap"
)

// PiecesPerPlayer is both the starting roster and the captures needed to win.
const PiecesPerPlayer = 12

// NoWinner is what Winner reports while the game is still running.
const NoWinner = "no winner yet"

// Move is one accepted move request.
type Move struct {
	Player   string     `json:"player"`
	PieceID  int        `json:"pieceId"`
	From     Position   `json:"from"`
	To       Position   `json:"to"`
	Captures []Position `json:"captures,omitempty"`
}

type Option func(*Game)

// WithLogger overrides the process logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// Game is the controller for one match between two players. It is not safe
// for concurrent use; hosts serialize calls.
type Game struct {
	board       *Board
	players     map[string]*Player
	order       []string
	currentTurn string
	lastMove    *Piece
	nextPieceID int
	history     []Move
	log         *zap.Logger
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		board:   NewBoard(),
		players: make(map[string]*Player),
		log:     obslog.L(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreatePlayer registers a player and places its 12 pieces. Black moves first.
func (g *Game) CreatePlayer(name string, color Color) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPlayer)
	}
	if color != Black && color != White {
		return nil, fmt.Errorf("%w: unknown color %q", ErrInvalidPlayer, color)
	}
	if _, ok := g.players[name]; ok {
		return nil, fmt.Errorf("%w: %q already registered", ErrInvalidPlayer, name)
	}
	if len(g.order) == 2 {
		return nil, fmt.Errorf("%w: game already has two players", ErrInvalidPlayer)
	}
	for _, other := range g.players {
		if other.Color == color {
			return nil, fmt.Errorf("%w: %s already taken by %q", ErrInvalidPlayer, color, other.Name)
		}
	}

	pl := NewPlayer(name, color)
	g.players[name] = pl
	g.order = append(g.order, name)
	if color == Black {
		g.currentTurn = name
	}
	g.placePieces(pl)

	g.log.Info("player_created",
		zap.String("player", name),
		zap.String("color", string(color)),
	)
	return pl, nil
}

func (g *Game) placePieces(pl *Player) {
	first := 0
	if pl.Color == Black {
		first = Size - 3
	}
	for row := first; row < first+3; row++ {
		for col := 0; col < Size; col++ {
			pos := Position{Row: row, Col: col}
			if !pos.Dark() {
				continue
			}
			p := &Piece{ID: g.nextPieceID, Owner: pl.Name, Color: pl.Color}
			g.nextPieceID++
			g.board.Place(pos, p)
			pl.AddPiece(p)
		}
	}
}

// PlayMove moves the piece at from to to for player name and returns the
// number of opponent pieces captured. A rejected move changes nothing.
func (g *Game) PlayMove(name string, from, to Position) (int, error) {
	picked, err := g.validate(name, from, to)
	if err != nil {
		g.log.Debug("move_rejected",
			zap.String("player", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.String("kind", KindOf(err)),
			zap.Error(err),
		)
		return 0, err
	}

	pl := g.players[name]
	captures := g.captureAlong(name, from, to)

	g.board.Place(to, picked)
	g.board.Remove(from, to)
	pl.AddCapturedPieces(len(captures))

	if len(captures) == 0 {
		g.currentTurn = g.opponentOf(name)
	} else {
		// same player keeps the turn to continue the chain
		g.currentTurn = name
	}
	g.lastMove = picked
	g.history = append(g.history, Move{
		Player:   name,
		PieceID:  picked.ID,
		From:     from,
		To:       to,
		Captures: captures,
	})

	g.promote(picked, pl.Color, to)

	g.log.Info("move_played",
		zap.String("player", name),
		zap.Int("piece", picked.ID),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Int("captured", len(captures)),
		zap.String("turn", g.currentTurn),
	)
	if len(captures) > 0 && pl.CapturedPiecesCount() >= PiecesPerPlayer {
		g.log.Info("game_won", zap.String("player", name))
	}
	return len(captures), nil
}

// validate runs every check before anything is mutated.
func (g *Game) validate(name string, from, to Position) (*Piece, error) {
	if _, ok := g.players[name]; !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrInvalidPlayer, name)
	}
	if !from.InBounds() || !to.InBounds() {
		return nil, fmt.Errorf("%w: %v -> %v is off the board", ErrInvalidSquare, from, to)
	}
	if !from.Dark() || !to.Dark() {
		return nil, fmt.Errorf("%w: %v -> %v touches a light square", ErrInvalidSquare, from, to)
	}
	if len(g.order) < 2 {
		return nil, fmt.Errorf("%w: waiting for an opponent", ErrOutOfTurn)
	}

	picked := g.board.Get(from)
	turn := g.currentTurn
	if g.lastMove != nil && g.lastMove.Owner == turn {
		if name != turn {
			// the chain ended and the opponent moves
			turn = name
		} else if picked == nil || picked.ID != g.lastMove.ID {
			return nil, fmt.Errorf("%w: capture chain must continue with piece %d at %v",
				ErrOutOfTurn, g.lastMove.ID, g.lastMove.Location)
		}
	}
	if turn != name {
		return nil, fmt.Errorf("%w: it is %q's turn", ErrOutOfTurn, turn)
	}

	if picked == nil || picked.Owner != name {
		return nil, fmt.Errorf("%w: %q has no piece at %v", ErrInvalidSquare, name, from)
	}
	if g.board.Get(to) != nil {
		return nil, fmt.Errorf("%w: %v is occupied", ErrInvalidSquare, to)
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 || abs(dr) != abs(dc) {
		return nil, fmt.Errorf("%w: %v -> %v is not a diagonal", ErrInvalidSquare, from, to)
	}
	return picked, nil
}

// captureAlong walks the squares strictly between from and to and removes
// every opponent piece found there.
func (g *Game) captureAlong(name string, from, to Position) []Position {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	dist := abs(to.Row - from.Row)

	var captures []Position
	for step := 1; step < dist; step++ {
		at := Position{Row: from.Row + step*dr, Col: from.Col + step*dc}
		p := g.board.Get(at)
		if p == nil || p.Owner == name {
			continue
		}
		g.board.Remove(at, OffBoard)
		captures = append(captures, at)
	}
	return captures
}

func (g *Game) promote(p *Piece, color Color, to Position) {
	var promoted bool
	switch {
	case to.Row == color.KingRow() && p.Promotion != TripleKing:
		promoted = p.promote(King)
	case to.Row == color.HomeRow():
		promoted = p.promote(TripleKing)
	}
	if promoted {
		g.log.Info("piece_promoted",
			zap.Int("piece", p.ID),
			zap.String("owner", p.Owner),
			zap.Stringer("promotion", p.Promotion),
		)
	}
}

func (g *Game) opponentOf(name string) string {
	for _, other := range g.order {
		if other != name {
			return other
		}
	}
	return ""
}

// PieceDetails returns the label of the piece at pos, or "" if the square is
// empty.
func (g *Game) PieceDetails(pos Position) (string, error) {
	if !pos.InBounds() {
		return "", fmt.Errorf("%w: %v is off the board", ErrInvalidSquare, pos)
	}
	if p := g.board.Get(pos); p != nil {
		return p.Label(), nil
	}
	return "", nil
}

// Winner returns the first player to capture all twelve opposing pieces, or
// NoWinner.
func (g *Game) Winner() string {
	for _, name := range g.order {
		if g.players[name].CapturedPiecesCount() >= PiecesPerPlayer {
			return name
		}
	}
	return NoWinner
}

// SerializeBoard returns every square's label, "" where empty.
func (g *Game) SerializeBoard() [Size][Size]string {
	return g.board.Labels()
}

func (g *Game) Board() *Board { return g.board }

func (g *Game) CurrentTurn() string { return g.currentTurn }

// Player looks up a registered player.
func (g *Game) Player(name string) (*Player, error) {
	pl, ok := g.players[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrInvalidPlayer, name)
	}
	return pl, nil
}

// Players returns the registered players in registration order.
func (g *Game) Players() []*Player {
	out := make([]*Player, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.players[name])
	}
	return out
}

// LastMoved is the piece that made the most recent move, if any.
func (g *Game) LastMoved() (Piece, bool) {
	if g.lastMove == nil {
		return Piece{}, false
	}
	return *g.lastMove, true
}

// InCaptureChain reports whether the previous move captured and its player
// still holds the turn.
func (g *Game) InCaptureChain() bool {
	return g.lastMove != nil && g.lastMove.Owner == g.currentTurn
}

// History returns a copy of the accepted moves.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	for i, m := range g.history {
		m.Captures = append([]Position(nil), m.Captures...)
		out[i] = m
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
