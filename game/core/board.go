package core

import "strings"

// Size is the number of rows and columns on the board.
const Size = 8

// Square holds at most one piece.
type Square struct {
	piece *Piece
}

func (s *Square) Piece() *Piece { return s.piece }

// Board is the 8x8 grid. It does not validate coordinates; callers check
// InBounds first.
type Board struct {
	Grid [Size][Size]Square
}

func NewBoard() *Board {
	return &Board{}
}

// Place puts p at pos and updates its location. Any occupant is overwritten.
func (b *Board) Place(pos Position, p *Piece) {
	p.Location = pos
	b.Grid[pos.Row][pos.Col].piece = p
}

// Remove clears pos. The removed piece's location becomes next: OffBoard for
// a capture, or the destination when the removal is half of a move.
func (b *Board) Remove(pos Position, next Position) *Piece {
	sq := &b.Grid[pos.Row][pos.Col]
	p := sq.piece
	if p == nil {
		return nil
	}
	sq.piece = nil
	p.Location = next
	return p
}

// Get returns the piece at pos, or nil.
func (b *Board) Get(pos Position) *Piece {
	return b.Grid[pos.Row][pos.Col].piece
}

// Labels returns the display label of every square, "" where empty.
func (b *Board) Labels() [Size][Size]string {
	var out [Size][Size]string
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p := b.Grid[row][col].piece; p != nil {
				out[row][col] = p.Label()
			}
		}
	}
	return out
}

// Occupied counts the pieces on the board.
func (b *Board) Occupied() int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.Grid[row][col].piece != nil {
				n++
			}
		}
	}
	return n
}

// String prints the board one row per line, '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < Size; col++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('0' + col))
	}
	sb.WriteByte('\n')
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('0' + row))
		sb.WriteByte(' ')
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(glyph(b.Grid[row][col].piece))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(p *Piece) string {
	if p == nil {
		return "."
	}
	g := "w"
	if p.Color == Black {
		g = "b"
	}
	switch p.Promotion {
	case King:
		return strings.ToUpper(g)
	case TripleKing:
		if p.Color == Black {
			return "#"
		}
		return "@"
	}
	return g
}
