package network

import (
	"encoding/json"

	"Draughts/game/core"
)

// Message is the envelope for every websocket frame in both directions.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// inbound is a client frame whose content is decoded by type.
type inbound struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MoveRequest asks to move a piece. Player is ignored on the websocket,
// where the connection's seat decides who moves.
type MoveRequest struct {
	Player string         `json:"player"`
	From   *core.Position `json:"from" binding:"required"`
	To     *core.Position `json:"to" binding:"required"`
}

type PlayerState struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Captured    int    `json:"captured"`
	Kings       int    `json:"kings"`
	TripleKings int    `json:"tripleKings"`
	PiecesLeft  int    `json:"piecesLeft"`
}

type GameState struct {
	GameID         string                       `json:"gameId"`
	Board          [core.Size][core.Size]string `json:"board"`
	CurrentPlayer  string                       `json:"currentPlayer"`
	YourColor      string                       `json:"yourColor,omitempty"`
	Winner         string                       `json:"winner,omitempty"`
	InCaptureChain bool                         `json:"inCaptureChain"`
	Players        []PlayerState                `json:"players"`
	LastMove       *core.Move                   `json:"lastMove,omitempty"`
	// LastPiece is the piece that made LastMove, with its promotion.
	LastPiece      *core.Piece                  `json:"lastPiece,omitempty"`
}

type MoveResult struct {
	Captured int       `json:"captured"`
	State    GameState `json:"state"`
}

type ErrorContent struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func errorMessage(err error) Message {
	return Message{
		Type:    "error",
		Content: ErrorContent{Kind: core.KindOf(err), Message: err.Error()},
	}
}
