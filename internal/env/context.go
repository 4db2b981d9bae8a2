// Package env holds the mutable execution state of one script run.
//
// A Context is shared by the checker and the interpreter of the same run and
// is not safe for concurrent use. Concurrent runs each need their own Context.
package env

import (
	"maps"
	"slices"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// State is the jump state machine of the interpreter.
type State uint8

const (
	// Running executes statements in order.
	Running State = iota
	// Jumping means a goto fired and the program counter has not been redirected yet.
	Jumping
)

func (s State) String() string {
	if s == Jumping {
		return "Jumping"
	}
	return "Running"
}

// Context is the variable store, the label table and the jump signal.
type Context struct {
	Variables map[source.StringID]value.Value
	Labels    map[source.StringID]int // метка -> индекс оператора в блоке
	State     State
	Target    source.StringID // valid while State == Jumping
}

// New returns an empty context in the Running state.
func New() *Context {
	return &Context{
		Variables: make(map[source.StringID]value.Value),
		Labels:    make(map[source.StringID]int),
	}
}

// Reset drops all variables, labels and any pending jump.
func (c *Context) Reset() {
	clear(c.Variables)
	clear(c.Labels)
	c.State = Running
	c.Target = source.NoStringID
}

// Lookup returns the current value of a variable.
func (c *Context) Lookup(name source.StringID) (value.Value, bool) {
	v, ok := c.Variables[name]
	return v, ok
}

// Assign sets a variable. The kind of a variable may change between assignments.
func (c *Context) Assign(name source.StringID, v value.Value) {
	c.Variables[name] = v
}

// LabelIndex returns the statement index a label points at.
func (c *Context) LabelIndex(name source.StringID) (int, bool) {
	idx, ok := c.Labels[name]
	return idx, ok
}

// DuplicateLabel is a label statement whose name was already taken.
type DuplicateLabel struct {
	Name  source.StringID
	Stmt  ast.StmtID
	First ast.StmtID
}

// RebuildLabels clears the label table and refills it from the label
// statements in stmts. The first declaration of a name wins; later ones are
// returned as duplicates in source order.
func (c *Context) RebuildLabels(b *ast.Builder, stmts []ast.StmtID) []DuplicateLabel {
	clear(c.Labels)
	var dups []DuplicateLabel
	for i, id := range stmts {
		lbl, ok := b.Stmts.Label(id)
		if !ok {
			continue
		}
		if first, taken := c.Labels[lbl.Name]; taken {
			dups = append(dups, DuplicateLabel{Name: lbl.Name, Stmt: id, First: stmts[first]})
			continue
		}
		c.Labels[lbl.Name] = i
	}
	return dups
}

// RequestJump moves the state machine to Jumping.
func (c *Context) RequestJump(label source.StringID) {
	c.State = Jumping
	c.Target = label
}

// TakeJump consumes a pending jump and returns to Running.
func (c *Context) TakeJump() (source.StringID, bool) {
	if c.State != Jumping {
		return source.NoStringID, false
	}
	target := c.Target
	c.State = Running
	c.Target = source.NoStringID
	return target, true
}

// Named returns the variables keyed by their text, for display and tests.
func (c *Context) Named(strings *source.Interner) map[string]value.Value {
	out := make(map[string]value.Value, len(c.Variables))
	for id, v := range c.Variables {
		out[strings.MustLookup(id)] = v
	}
	return out
}

// SortedNames lists variable names in lexical order.
func (c *Context) SortedNames(strings *source.Interner) []string {
	return slices.Sorted(maps.Keys(c.Named(strings)))
}
