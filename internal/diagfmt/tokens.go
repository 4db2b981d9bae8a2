package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Span   source.Span `json:"span"`
	Row    uint32      `json:"row"`
	Col    uint32      `json:"col"`
	Length uint32      `json:"length"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		// перевод строки печатаем как есть, без кавычек
		if tok.Text != "" && tok.Kind != token.NewLine {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d (len %d)\n", tok.Coord.Row, tok.Coord.Col, tok.Coord.Length)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Span:   tok.Span,
			Row:    tok.Coord.Row,
			Col:    tok.Coord.Col,
			Length: tok.Coord.Length,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
