package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexInvalidChar Code = 1001

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynExpectExpression  Code = 2003
	SynUnrecognizedStmt  Code = 2004
	SynUnclosedBracket   Code = 2005
	SynExpectIdentifier  Code = 2006
	SynExpectNewLine     Code = 2007
	SynParseAborted      Code = 2008
	SynIntegerOutOfRange Code = 2009
	SynForeignSyntax     Code = 2010

	// Семантические
	SemaInfo              Code = 3000
	SemaUndeclaredVar     Code = 3001
	SemaDuplicateLabel    Code = 3002
	SemaUndeclaredLabel   Code = 3003
	SemaBinaryMismatch    Code = 3004
	SemaUnaryMismatch     Code = 3005
	SemaDivisionByZero    Code = 3006
	SemaUnknownBuiltin    Code = 3007
	SemaArity             Code = 3008
	SemaArgType           Code = 3009
	SemaNotSpawned        Code = 3010
	SemaAlreadySpawned    Code = 3011
	SemaOutOfBounds       Code = 3012
	SemaInvalidDirection  Code = 3013
	SemaUnsupportedColor  Code = 3014
	SemaInvalidBrushSize  Code = 3015
	SemaCanvasNotSquare   Code = 3016
	SemaBuiltinMisuse     Code = 3017
	SemaConditionNotBool  Code = 3018
	SemaChannelOutOfRange Code = 3019

	// Ошибки исполнения
	RunInfo            Code = 4000
	RunOutOfBounds     Code = 4001
	RunDivisionByZero  Code = 4002
	RunUnsetVariable   Code = 4003
	RunInvalidArgument Code = 4004
	RunNotSpawned      Code = 4005
	RunStepLimit       Code = 4006
	RunCanceled        Code = 4007
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:        "Lexical information",
	LexInvalidChar: "Invalid character",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynExpectExpression:  "Expected expression",
	SynUnrecognizedStmt:  "Unrecognized statement",
	SynUnclosedBracket:   "Unclosed bracket",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectNewLine:     "Expected end of line",
	SynParseAborted:      "Parsing stopped",
	SynIntegerOutOfRange: "Integer literal out of range",
	SynForeignSyntax:     "Foreign syntax",

	SemaInfo:              "Semantic information",
	SemaUndeclaredVar:     "Undeclared variable",
	SemaDuplicateLabel:    "Duplicate label",
	SemaUndeclaredLabel:   "Undeclared label",
	SemaBinaryMismatch:    "Unsupported binary operation",
	SemaUnaryMismatch:     "Unsupported unary operation",
	SemaDivisionByZero:    "Division by zero",
	SemaUnknownBuiltin:    "Unknown action or function",
	SemaArity:             "Wrong number of arguments",
	SemaArgType:           "Wrong argument type",
	SemaNotSpawned:        "Wall-E has not spawned",
	SemaAlreadySpawned:    "Wall-E has already spawned",
	SemaOutOfBounds:       "Position outside the canvas",
	SemaInvalidDirection:  "Invalid direction",
	SemaUnsupportedColor:  "Unsupported color",
	SemaInvalidBrushSize:  "Invalid brush size",
	SemaCanvasNotSquare:   "Canvas is not square",
	SemaBuiltinMisuse:     "Action used as function or function used as action",
	SemaConditionNotBool:  "Jump condition is not boolean",
	SemaChannelOutOfRange: "Color channel out of range",

	RunInfo:            "Runtime information",
	RunOutOfBounds:     "Position outside the canvas",
	RunDivisionByZero:  "Division by zero",
	RunUnsetVariable:   "Variable read before assignment",
	RunInvalidArgument: "Invalid argument",
	RunNotSpawned:      "Wall-E has not spawned",
	RunStepLimit:       "Step limit exceeded",
	RunCanceled:        "Execution canceled",
}

// ID returns the stable string form of the code, e.g. "SEM3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
