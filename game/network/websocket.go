package network

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"Draughts/game/core"
	"Draughts/game/obslog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var errNoSeat = errors.New("connection has no seat")

type SessionOptions struct {
	BlackName       string
	WhiteName       string
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins limits websocket origins; empty allows any.
	AllowedOrigins []string
	Metrics        *Metrics
	Logger         *zap.Logger
}

// GameSession hosts a single game. The first websocket client sits Black,
// the second White.
type GameSession struct {
	ID      string
	Game    *core.Game
	Clients map[*websocket.Conn]core.Color
	names   map[core.Color]string

	upgrader websocket.Upgrader
	metrics  *Metrics
	log      *zap.Logger
	mu       sync.Mutex
}

func NewGameSession(opts SessionOptions) (*GameSession, error) {
	log := opts.Logger
	if log == nil {
		log = obslog.L()
	}
	id := uuid.NewString()
	log = log.With(zap.String("game_id", id))

	g := core.NewGame(core.WithLogger(log))
	if _, err := g.CreatePlayer(opts.BlackName, core.Black); err != nil {
		return nil, err
	}
	if _, err := g.CreatePlayer(opts.WhiteName, core.White); err != nil {
		return nil, err
	}

	s := &GameSession{
		ID:      id,
		Game:    g,
		Clients: make(map[*websocket.Conn]core.Color),
		names: map[core.Color]string{
			core.Black: opts.BlackName,
			core.White: opts.WhiteName,
		},
		metrics: opts.Metrics,
		log:     log,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  opts.ReadBufferSize,
		WriteBufferSize: opts.WriteBufferSize,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	return s, nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

// HandleWebSocket seats the connection and serves its messages until it closes.
func HandleWebSocket(c *gin.Context, session *GameSession) {
	conn, err := session.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		session.log.Warn("ws_upgrade_failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var want core.Color
	if q := c.Query("color"); q != "" {
		if want, err = core.ParseColor(q); err != nil {
			session.send(conn, Message{Type: "error", Content: ErrorContent{Message: err.Error()}})
			return
		}
	}

	session.mu.Lock()
	color, ok := session.freeSeat(want)
	if !ok {
		msg := "Game is full"
		if want != "" {
			msg = string(want) + " is taken"
		}
		session.write(conn, Message{Type: "error", Content: ErrorContent{Message: msg}})
		session.mu.Unlock()
		return
	}
	session.Clients[conn] = color
	session.metrics.clientDelta(1)
	session.write(conn, Message{Type: "state", Content: session.stateLocked(color)})
	session.mu.Unlock()

	session.log.Info("ws_joined", zap.String("color", string(color)), zap.String("player", session.names[color]))
	defer session.leave(conn)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				session.log.Debug("ws_read_failed", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "move":
			var req MoveRequest
			if err := json.Unmarshal(msg.Content, &req); err != nil || req.From == nil || req.To == nil {
				session.send(conn, Message{Type: "error", Content: ErrorContent{Message: "malformed move"}})
				continue
			}
			session.processMove(conn, *req.From, *req.To)
		case "state":
			session.mu.Lock()
			session.write(conn, Message{Type: "state", Content: session.stateLocked(session.Clients[conn])})
			session.mu.Unlock()
		default:
			session.send(conn, Message{Type: "error", Content: ErrorContent{Message: "unknown message type " + msg.Type}})
		}
	}
}

// freeSeat returns want if it is free, or the first free seat when want is
// empty.
func (s *GameSession) freeSeat(want core.Color) (core.Color, bool) {
	taken := make(map[core.Color]bool, 2)
	for _, c := range s.Clients {
		taken[c] = true
	}
	if want != "" {
		return want, !taken[want]
	}
	for _, c := range []core.Color{core.Black, core.White} {
		if !taken[c] {
			return c, true
		}
	}
	return "", false
}

func (s *GameSession) leave(conn *websocket.Conn) {
	s.mu.Lock()
	color, ok := s.Clients[conn]
	delete(s.Clients, conn)
	s.mu.Unlock()
	if ok {
		s.metrics.clientDelta(-1)
		s.log.Info("ws_left", zap.String("color", string(color)))
	}
}

func (s *GameSession) processMove(conn *websocket.Conn, from, to core.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.Clients[conn]
	if !ok {
		s.write(conn, errorMessage(errNoSeat))
		return
	}
	if _, err := s.playLocked(s.names[color], from, to); err != nil {
		s.write(conn, errorMessage(err))
	}
}

// PlayMove applies a move on behalf of any host and broadcasts the new state.
func (s *GameSession) PlayMove(player string, from, to core.Position) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	captured, err := s.playLocked(player, from, to)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Captured: captured, State: s.stateLocked("")}, nil
}

func (s *GameSession) playLocked(player string, from, to core.Position) (int, error) {
	captured, err := s.Game.PlayMove(player, from, to)
	s.metrics.observeMove(captured, err)
	if err != nil {
		return 0, err
	}
	s.broadcastLocked()
	return captured, nil
}

// State returns the current state as seen by a spectator.
func (s *GameSession) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked("")
}

func (s *GameSession) stateLocked(viewer core.Color) GameState {
	st := GameState{
		GameID:         s.ID,
		Board:          s.Game.SerializeBoard(),
		CurrentPlayer:  s.Game.CurrentTurn(),
		YourColor:      string(viewer),
		InCaptureChain: s.Game.InCaptureChain(),
	}
	if w := s.Game.Winner(); w != core.NoWinner {
		st.Winner = w
	}
	for _, pl := range s.Game.Players() {
		st.Players = append(st.Players, playerState(pl))
	}
	if p, ok := s.Game.LastMoved(); ok {
		st.LastPiece = &p
	}
	if hist := s.Game.History(); len(hist) > 0 {
		last := hist[len(hist)-1]
		st.LastMove = &last
	}
	return st
}

func playerState(pl *core.Player) PlayerState {
	return PlayerState{
		Name:        pl.Name,
		Color:       string(pl.Color),
		Captured:    pl.CapturedPiecesCount(),
		Kings:       pl.KingCount(),
		TripleKings: pl.TripleKingCount(),
		PiecesLeft:  pl.PiecesLeft(),
	}
}

func (s *GameSession) broadcastLocked() {
	for client, color := range s.Clients {
		if err := client.WriteJSON(Message{Type: "state", Content: s.stateLocked(color)}); err != nil {
			s.log.Warn("ws_broadcast_failed", zap.String("color", string(color)), zap.Error(err))
			delete(s.Clients, client)
			s.metrics.clientDelta(-1)
			client.Close()
		}
	}
}

func (s *GameSession) send(conn *websocket.Conn, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(conn, msg)
}

// write must be called with s.mu held; gorilla allows one writer per conn.
func (s *GameSession) write(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		s.log.Debug("ws_write_failed", zap.Error(err))
	}
}
