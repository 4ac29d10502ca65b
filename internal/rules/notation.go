package rules

import (
	"fmt"
	"strings"
)

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: square %q", ErrBadNotation, s)
	}
	sq := Square{Row: int(s[1]) - '1', Col: int(s[0]) - 'a'}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: square %q", ErrBadNotation, s)
	}
	return sq, nil
}

// ParseUCI splits a move like "e2e4" or "e7e8n" into its parts. Input is
// case-insensitive.
func ParseUCI(s string) (from, to Square, promo PieceType, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Square{}, Square{}, NoPieceType, fmt.Errorf("%w: move %q", ErrBadNotation, s)
	}
	if from, err = ParseSquare(s[:2]); err != nil {
		return Square{}, Square{}, NoPieceType, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return Square{}, Square{}, NoPieceType, err
	}
	if len(s) == 5 {
		promo = pieceTypeFromLetter(s[4])
		if !validPromotion(promo) || promo == NoPieceType {
			return Square{}, Square{}, NoPieceType, fmt.Errorf("%w: promotion %q", ErrInvalidPromotion, s[4])
		}
	}
	return from, to, promo, nil
}

// String draws the board with rank 8 on top, '.' for empty squares.
func (b Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		sb.WriteByte('1' + byte(row))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			sb.WriteByte(b[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
