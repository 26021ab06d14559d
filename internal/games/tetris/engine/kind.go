// Package engine implements the Tetris board and piece rules: SRS rotation
// with wall kicks, gravity and lock delay, line clears, hold, ghost and the
// 7-bag randomizer.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import (
	"fmt"
	"strings"
)

// Kind identifies a tetromino shape. The zero value marks an empty cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists the seven playable kinds in bag refill order.
var Kinds = [7]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the letter of the kind, or "." for an empty cell.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "."
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// ParseKind converts a letter such as "T" into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown piece kind %q", s)
}

// MarshalText encodes the kind as its letter.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a letter; "." and "" decode to KindNone.
func (k *Kind) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == "." {
		*k = KindNone
		return nil
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
