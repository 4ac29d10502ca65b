package rules

import (
	"fmt"
	"strings"
)

// StartState is the snapshot of the standard starting position.
const StartState = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// ExportState encodes piece placement (rank 8 first, FEN letters, digits for
// runs of empty squares) and the side to move. Castling availability, the
// en-passant target and the history are not part of the snapshot.
func (e *Engine) ExportState() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			pc := e.pos.board[row][col]
			if pc.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	if e.pos.turn == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	return sb.String()
}

// FEN extends the snapshot with castling availability and the en-passant
// target so other chess tools can load the position. Castling letters come
// from unmoved kings and rooks on their home squares; clocks are always "0 1".
func (e *Engine) FEN() string {
	b := &e.pos.board
	castle := ""
	for _, c := range []Color{White, Black} {
		row := c.backRank()
		king := b[row][4]
		if king.Type != King || king.Color != c || king.HasMoved {
			continue
		}
		letters := "KQ"
		if c == Black {
			letters = "kq"
		}
		if r := b[row][7]; r.Type == Rook && r.Color == c && !r.HasMoved {
			castle += letters[:1]
		}
		if r := b[row][0]; r.Type == Rook && r.Color == c && !r.HasMoved {
			castle += letters[1:]
		}
	}
	if castle == "" {
		castle = "-"
	}
	ep := "-"
	if e.pos.hasEP {
		ep = e.pos.ep.String()
	}
	return e.ExportState() + " " + castle + " " + ep + " 0 1"
}

// ImportState replaces the board and side to move with the snapshot in s.
// History, captures and the en-passant target are cleared. Castling rights
// cannot be recovered from placement; kings and rooks count as unmoved only
// when they stand on their starting squares. On error the engine is left
// untouched.
func (e *Engine) ImportState(s string) error {
	pos, err := parseState(s)
	if err != nil {
		return err
	}
	e.reset(pos)
	return nil
}

func parseState(s string) (position, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return position{}, fmt.Errorf("%w: want placement and side to move, got %d fields", ErrMalformedState, len(fields))
	}

	var pos position
	switch fields[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return position{}, fmt.Errorf("%w: side to move %q", ErrMalformedState, fields[1])
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return position{}, fmt.Errorf("%w: %d ranks", ErrMalformedState, len(ranks))
	}
	var kings [2]int
	for i, rank := range ranks {
		row := 7 - i
		col := 0
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				if col > 8 {
					return position{}, fmt.Errorf("%w: rank %d overflows", ErrMalformedState, row+1)
				}
				continue
			}
			t := pieceTypeFromLetter(c)
			if t == NoPieceType {
				return position{}, fmt.Errorf("%w: unknown piece %q", ErrMalformedState, c)
			}
			if col >= 8 {
				return position{}, fmt.Errorf("%w: rank %d overflows", ErrMalformedState, row+1)
			}
			color := White
			if c >= 'a' {
				color = Black
			}
			sq := Square{row, col}
			pc := Piece{Type: t, Color: color}
			pc.HasMoved = !onStartSquare(pc, sq)
			pos.board.set(sq, pc)
			if t == King {
				kings[color]++
			}
			col++
		}
		if col != 8 {
			return position{}, fmt.Errorf("%w: rank %d has %d files", ErrMalformedState, row+1, col)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return position{}, fmt.Errorf("%w: need one king per side, got white=%d black=%d", ErrMalformedState, kings[White], kings[Black])
	}
	if idle := pos.turn.Opposite(); pos.inCheck(idle) {
		return position{}, fmt.Errorf("%w: %s is in check but %s is to move", ErrMalformedState, idle, pos.turn)
	}
	return pos, nil
}
