package core

// Player owns a color, every piece created for it and its capture tally.
type Player struct {
	Name     string
	Color    Color
	pieces   []*Piece
	captured int
}

func NewPlayer(name string, color Color) *Player {
	return &Player{Name: name, Color: color}
}

// AddPiece records p in the roster. Captured pieces stay in the roster.
func (pl *Player) AddPiece(p *Piece) {
	pl.pieces = append(pl.pieces, p)
}

// Pieces returns the full roster, captured pieces included.
func (pl *Player) Pieces() []*Piece {
	out := make([]*Piece, len(pl.pieces))
	copy(out, pl.pieces)
	return out
}

// KingCount counts Kings still on the board.
func (pl *Player) KingCount() int {
	return pl.countOnBoard(King)
}

// TripleKingCount counts TripleKings still on the board.
func (pl *Player) TripleKingCount() int {
	return pl.countOnBoard(TripleKing)
}

// PiecesLeft counts pieces that have not been captured.
func (pl *Player) PiecesLeft() int {
	n := 0
	for _, p := range pl.pieces {
		if p.OnBoard() {
			n++
		}
	}
	return n
}

func (pl *Player) countOnBoard(promo Promotion) int {
	n := 0
	for _, p := range pl.pieces {
		if p.Promotion == promo && p.OnBoard() {
			n++
		}
	}
	return n
}

func (pl *Player) CapturedPiecesCount() int { return pl.captured }

// AddCapturedPieces adds n to the tally. Negative values are ignored.
func (pl *Player) AddCapturedPieces(n int) {
	if n > 0 {
		pl.captured += n
	}
}
