package core

import "errors"

// Rule violations. Every error returned by Game wraps exactly one of these.
var (
	ErrInvalidPlayer = errors.New("invalid player")
	ErrInvalidSquare = errors.New("invalid square")
	ErrOutOfTurn     = errors.New("out of turn")
)

// Kind names for wire formats and logs.
const (
	KindInvalidPlayer = "InvalidPlayer"
	KindInvalidSquare = "InvalidSquare"
	KindOutOfTurn     = "OutofTurn"
)

// KindOf classifies err. It returns "" for nil and for errors that are not
// rule violations.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidPlayer):
		return KindInvalidPlayer
	case errors.Is(err, ErrInvalidSquare):
		return KindInvalidSquare
	case errors.Is(err, ErrOutOfTurn):
		return KindOutOfTurn
	}
	return ""
}

// ErrorForKind is the inverse of KindOf.
func ErrorForKind(kind string) error {
	switch kind {
	case KindInvalidPlayer:
		return ErrInvalidPlayer
	case KindInvalidSquare:
		return ErrInvalidSquare
	case KindOutOfTurn:
		return ErrOutOfTurn
	}
	return nil
}
