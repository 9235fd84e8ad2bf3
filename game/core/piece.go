package core

import "fmt"

// Color is the side a player and its pieces belong to.
type Color string

const (
	Black Color = "Black"
	White Color = "White"
)

// ParseColor accepts the canonical names as well as lower-case and one letter forms.
func ParseColor(s string) (Color, error) {
	switch s {
	case "Black", "black", "b", "B":
		return Black, nil
	case "White", "white", "w", "W":
		return White, nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// HomeRow is the row a color starts on and the row its TripleKings are made on.
func (c Color) HomeRow() int {
	if c == Black {
		return Size - 1
	}
	return 0
}

// KingRow is the far row where a piece of this color is crowned.
func (c Color) KingRow() int {
	if c == Black {
		return 0
	}
	return Size - 1
}

// Promotion is the crown state of a piece. It only ever increases.
type Promotion int

const (
	Regular Promotion = iota
	King
	TripleKing
)

func (p Promotion) String() string {
	switch p {
	case King:
		return "King"
	case TripleKing:
		return "TripleKing"
	default:
		return "Regular"
	}
}

// Position addresses a square by row and column, both 0..7.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// OffBoard is the location of a captured piece.
var OffBoard = Position{Row: -1, Col: -1}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// InBounds reports whether p lies on the 8x8 grid.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Dark reports whether p is a playable square.
func (p Position) Dark() bool {
	return (p.Row+p.Col)%2 == 1
}

// Piece is a single checker. Owner, Color and ID never change after creation.
type Piece struct {
	ID        int       `json:"id"`
	Owner     string    `json:"owner"`
	Color     Color     `json:"color"`
	Location  Position  `json:"location"`
	Promotion Promotion `json:"promotion"`
}

// OnBoard is false once the piece has been captured.
func (p *Piece) OnBoard() bool {
	return p.Location != OffBoard
}

// Label is the display form: "Black", "Black_king" or "Black_Triple_King".
func (p *Piece) Label() string {
	switch p.Promotion {
	case TripleKing:
		return string(p.Color) + "_Triple_King"
	case King:
		return string(p.Color) + "_king"
	default:
		return string(p.Color)
	}
}

// promote raises the piece to at least to. Lower values are ignored.
func (p *Piece) promote(to Promotion) bool {
	if to <= p.Promotion {
		return false
	}
	p.Promotion = to
	return true
}
