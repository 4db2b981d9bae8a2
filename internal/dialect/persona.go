package dialect

import (
	"fmt"
	"strings"
)

// Shape groups hints by meaning. It is presentation-only: it never affects
// scoring.
type Shape uint8

const (
	ShapeUnknown Shape = iota
	ShapeAssign
	ShapeIncrement
	ShapeSemicolon
	ShapeBraces
	ShapeComment
	ShapeControlFlow
	ShapeFunction
	ShapeDeclaration
	ShapeNull
	ShapeBoolCase
	ShapeWordOperator
)

// coreHints hold the PixelWallE side of the story; they do not depend on the dialect.
var coreHints = map[Shape][]string{
	ShapeAssign:       {"PixelWallE assigns with `<-`."},
	ShapeIncrement:    {"There is no increment operator; assign the new value with `<-`."},
	ShapeSemicolon:    {"Statements end at the line break, no `;` needed."},
	ShapeBraces:       {"There are no blocks; jump to a label with GoTo instead."},
	ShapeComment:      {"Scripts have no comments; remove the line."},
	ShapeControlFlow:  {"Loops and branches are written with a label and a conditional GoTo."},
	ShapeFunction:     {"Only built-in actions and functions exist; scripts cannot define their own."},
	ShapeDeclaration:  {"Variables need no declaration; the first `<-` creates them."},
	ShapeNull:         {"There is no null value; every variable holds a number, a boolean or a string."},
	ShapeBoolCase:     {"Booleans are lowercase `true` and `false`."},
	ShapeWordOperator: {"Logical operators are `&&`, `||` and `!`."},
}

// Persona defines the voice of a dialect hint message.
type Persona struct {
	Name      string
	Greetings []string
	LeadIns   []string
}

// RenderInput provides data for rendering a dialect hint message.
type RenderInput struct {
	Shape    Shape
	Detected string
}

// RenderHint builds a friendly, persona-based message for a hint.
// It is deterministic.
func RenderHint(d Kind, in RenderInput) string {
	p := personaFor(d)
	return p.Render(in)
}

func personaFor(d Kind) Persona {
	switch d {
	case Python:
		return Persona{
			Name:      "python",
			Greetings: []string{"Hello, Pythonista."},
			LeadIns:   []string{"That looks like Python: %s."},
		}
	case Go:
		return Persona{
			Name:      "go",
			Greetings: []string{"Oh hey, Gopher."},
			LeadIns:   []string{"I see %s."},
		}
	case CFamily:
		return Persona{
			Name:      "c-family",
			Greetings: []string{"Curly braces spotted."},
			LeadIns:   []string{"That looks like C-style %s."},
		}
	default:
		return Persona{
			Name:    "unknown",
			LeadIns: []string{"Foreign syntax detected: %s."},
		}
	}
}

// Render produces the single-line hint message.
func (p *Persona) Render(in RenderInput) string {
	parts := make([]string, 0, 3)

	if greeting := pick(p.Greetings, int(in.Shape)); greeting != "" {
		parts = append(parts, greeting)
	}
	if leadIn := formatTemplate(pick(p.LeadIns, int(in.Shape)), in.Detected); leadIn != "" {
		parts = append(parts, leadIn)
	}
	if core := pick(coreHints[in.Shape], int(in.Shape)); core != "" {
		parts = append(parts, core)
	}
	return strings.Join(parts, " ")
}

func pick(options []string, seed int) string {
	if len(options) == 0 {
		return ""
	}
	if seed < 0 {
		seed = -seed
	}
	return strings.TrimSpace(options[seed%len(options)])
}

func formatTemplate(tmpl, detected string) string {
	tmpl = strings.TrimSpace(tmpl)
	if tmpl == "" {
		return ""
	}
	if strings.Contains(tmpl, "%s") {
		if detected == "" {
			detected = "this"
		}
		return fmt.Sprintf(tmpl, detected)
	}
	return tmpl
}
