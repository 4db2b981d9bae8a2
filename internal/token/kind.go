package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind. The lexer never emits it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// NewLine terminates a statement.
	NewLine

	// Ident represents an identifier token.
	Ident
	// KwGoto represents the 'GoTo' keyword in any of its spellings.
	KwGoto

	// IntLit is a run of decimal digits.
	IntLit
	// BoolLit is 'true' or 'false'.
	BoolLit
	// StringLit is a double-quoted string on a single line.
	StringLit

	Plus     // +
	Minus    // -
	Star     // *
	StarStar // **
	Slash    // /
	Percent  // %
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Lt       // <
	LtEq     // <=
	LArrow   // <-
	Gt       // >
	GtEq     // >=
	EqEq     // ==
	Comma    // ,
	Bang     // !
	BangEq   // !=
	AndAnd   // &&
	OrOr     // ||
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	NewLine:   "NewLine",
	Ident:     "Ident",
	KwGoto:    "KwGoto",
	IntLit:    "IntLit",
	BoolLit:   "BoolLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	StarStar:  "StarStar",
	Slash:     "Slash",
	Percent:   "Percent",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Lt:        "Lt",
	LtEq:      "LtEq",
	LArrow:    "LArrow",
	Gt:        "Gt",
	GtEq:      "GtEq",
	EqEq:      "EqEq",
	Comma:     "Comma",
	Bang:      "Bang",
	BangEq:    "BangEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindLexemes = map[Kind]string{
	NewLine:  `\n`,
	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	StarStar: "**",
	Slash:    "/",
	Percent:  "%",
	LParen:   "(",
	RParen:   ")",
	LBracket: "[",
	RBracket: "]",
	Lt:       "<",
	LtEq:     "<=",
	LArrow:   "<-",
	Gt:       ">",
	GtEq:     ">=",
	EqEq:     "==",
	Comma:    ",",
	Bang:     "!",
	BangEq:   "!=",
	AndAnd:   "&&",
	OrOr:     "||",
	KwGoto:   "GoTo",
}

// Lexeme returns the canonical source spelling of fixed-text kinds,
// used in "expected X" messages. Other kinds return their name.
func (k Kind) Lexeme() string {
	if s, ok := kindLexemes[k]; ok {
		return s
	}
	return k.String()
}
