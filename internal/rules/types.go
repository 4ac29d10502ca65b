package rules

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) backRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) promotionRank() int {
	return c.Opposite().backRank()
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return "unknown"
}

// letter is the lowercase FEN/UCI letter of the type.
func (t PieceType) letter() byte {
	return " pnbrqk"[t]
}

func pieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	}
	return NoPieceType
}

// Piece is the content of a square. The zero value is an empty square.
// HasMoved only gates castling but is tracked for every piece.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

// Empty reports whether the square holding p is vacant.
func (p Piece) Empty() bool { return p.Type == NoPieceType }

// Letter returns the FEN letter, uppercase for White.
func (p Piece) Letter() byte {
	if p.Empty() {
		return '.'
	}
	l := p.Type.letter()
	if p.Color == White {
		l -= 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// Square addresses the board. Row 0 is White's back rank, column 0 the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether s lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String renders s in algebraic form, e.g. "e2".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.Col), '1' + byte(s.Row)})
}

// CastleSide tags a castling move.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

func (c CastleSide) String() string {
	switch c {
	case KingSide:
		return "O-O"
	case QueenSide:
		return "O-O-O"
	}
	return ""
}

// Move records an executed ply. Piece is the mover as it stood before the
// move; Captured is the zero Piece when nothing was taken.
type Move struct {
	From      Square     `json:"from"`
	To        Square     `json:"to"`
	Piece     Piece      `json:"piece"`
	Captured  Piece      `json:"captured"`
	Promotion PieceType  `json:"promotion,omitempty"`
	Castle    CastleSide `json:"castle,omitempty"`
	EnPassant bool       `json:"enPassant,omitempty"`
	Check     bool       `json:"check,omitempty"`
}

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool { return !m.Captured.Empty() }

// UCI returns the move in from-to notation with an optional promotion letter.
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(m.Promotion.letter())
	}
	return s
}

// Captured lists pieces taken by each side, in capture order.
type Captured struct {
	ByWhite []Piece `json:"byWhite"`
	ByBlack []Piece `json:"byBlack"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
