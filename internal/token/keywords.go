package token

var keywords = map[string]Kind{
	"goto":  KwGoto,
	"Goto":  KwGoto,
	"GoTo":  KwGoto,
	"true":  BoolLit,
	"false": BoolLit,
}

// LookupKeyword returns the keyword kind for ident.
// Keywords are case-sensitive: only the spellings above are recognised.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
