package dialect

import (
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

type keywordSignal struct {
	Dialect Kind
	Shape   Shape
	Score   int
	Reason  string
	// Replace is the PixelWallE spelling, when the word maps one to one.
	Replace string
}

// Ключевые слова, значимые только в начале строки.
var leadingSignals = map[string][]keywordSignal{
	"def":      {{Dialect: Python, Shape: ShapeFunction, Score: 5, Reason: "a `def`"}},
	"elif":     {{Dialect: Python, Shape: ShapeControlFlow, Score: 6, Reason: "an `elif` branch"}},
	"func":     {{Dialect: Go, Shape: ShapeFunction, Score: 5, Reason: "a `func`"}},
	"function": {{Dialect: CFamily, Shape: ShapeFunction, Score: 5, Reason: "a `function`"}},
	"let":      {{Dialect: CFamily, Shape: ShapeDeclaration, Score: 3, Reason: "a `let` declaration"}},
	"const":    {{Dialect: CFamily, Shape: ShapeDeclaration, Score: 2, Reason: "a `const` declaration"}},
	"var": {
		{Dialect: Go, Shape: ShapeDeclaration, Score: 2, Reason: "a `var` declaration"},
		{Dialect: CFamily, Shape: ShapeDeclaration, Score: 2, Reason: "a `var` declaration"},
	},
	"while": {
		{Dialect: Python, Shape: ShapeControlFlow, Score: 2, Reason: "a `while` loop"},
		{Dialect: CFamily, Shape: ShapeControlFlow, Score: 2, Reason: "a `while` loop"},
	},
	"for": {
		{Dialect: Python, Shape: ShapeControlFlow, Score: 2, Reason: "a `for` loop"},
		{Dialect: Go, Shape: ShapeControlFlow, Score: 2, Reason: "a `for` loop"},
		{Dialect: CFamily, Shape: ShapeControlFlow, Score: 2, Reason: "a `for` loop"},
	},
	"if": {
		{Dialect: Python, Shape: ShapeControlFlow, Score: 1, Reason: "an `if`"},
		{Dialect: Go, Shape: ShapeControlFlow, Score: 1, Reason: "an `if`"},
		{Dialect: CFamily, Shape: ShapeControlFlow, Score: 1, Reason: "an `if`"},
	},
	"else": {
		{Dialect: Python, Shape: ShapeControlFlow, Score: 1, Reason: "an `else`"},
		{Dialect: CFamily, Shape: ShapeControlFlow, Score: 1, Reason: "an `else`"},
	},
	"return": {
		{Dialect: Python, Shape: ShapeFunction, Score: 1, Reason: "a `return`"},
		{Dialect: Go, Shape: ShapeFunction, Score: 1, Reason: "a `return`"},
		{Dialect: CFamily, Shape: ShapeFunction, Score: 1, Reason: "a `return`"},
	},
}

// Слова внутри выражений.
var inlineSignals = map[string][]keywordSignal{
	"and":   {{Dialect: Python, Shape: ShapeWordOperator, Score: 3, Reason: "the `and` operator", Replace: "&&"}},
	"or":    {{Dialect: Python, Shape: ShapeWordOperator, Score: 3, Reason: "the `or` operator", Replace: "||"}},
	"not":   {{Dialect: Python, Shape: ShapeWordOperator, Score: 3, Reason: "the `not` operator", Replace: "!"}},
	"True":  {{Dialect: Python, Shape: ShapeBoolCase, Score: 4, Reason: "`True`", Replace: "true"}},
	"False": {{Dialect: Python, Shape: ShapeBoolCase, Score: 4, Reason: "`False`", Replace: "false"}},
	"None":  {{Dialect: Python, Shape: ShapeNull, Score: 4, Reason: "`None`"}},
	"nil":   {{Dialect: Go, Shape: ShapeNull, Score: 3, Reason: "`nil`"}},
	"null":  {{Dialect: CFamily, Shape: ShapeNull, Score: 3, Reason: "`null`"}},
}

// RecordIdent collects keyword evidence for a word of a rejected line.
// Statement keywords only count when the word starts the line.
func RecordIdent(e *Evidence, ident string, span source.Span, leading bool) {
	if e == nil || ident == "" {
		return
	}
	if leading {
		record(e, leadingSignals[ident], span)
	}
	record(e, inlineSignals[ident], span)
}

func record(e *Evidence, signals []keywordSignal, span source.Span) {
	for _, sig := range signals {
		h := Hint{
			Dialect: sig.Dialect,
			Shape:   sig.Shape,
			Score:   sig.Score,
			Reason:  sig.Reason,
			Span:    span,
		}
		if sig.Replace != "" {
			h.Edits = []diag.FixEdit{{Span: span, NewText: sig.Replace}}
		}
		e.Add(h)
	}
}
