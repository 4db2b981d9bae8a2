// Package builtin is the closed catalogue of host actions and functions.
//
// Script names are resolved to an Op once, when the parser builds a call
// node. The checker and the interpreter dispatch on Op with exhaustive
// switches and never compare names again.
package builtin

// Op identifies a builtin action or function. The zero value is Unknown.
type Op uint8

const (
	Unknown Op = iota

	// actions
	Spawn
	Draw
	Plot
	Move
	Size
	Color
	ColorRGB
	DrawLine
	PlotLine
	DrawCircle
	PlotCircle
	DrawRectangle
	PlotRectangle
	Fill
	Print
	Erase

	// functions
	GetActualX
	GetActualY
	GetCanvasSize
	GetCanvasWidth
	GetCanvasHeight
	GetBrushSize
	GetColorCount
	IsBrushColor
	IsBrushSize
	IsCanvasColor

	opCount
)

// Category tells actions (statements) from functions (expressions).
type Category uint8

const (
	CategoryNone Category = iota
	CategoryAction
	CategoryFunction
)

func (c Category) String() string {
	switch c {
	case CategoryAction:
		return "action"
	case CategoryFunction:
		return "function"
	default:
		return "none"
	}
}

// ParamKind is the static type a parameter accepts.
type ParamKind uint8

const (
	ParamInt ParamKind = iota
	ParamString
	// ParamAny accepts Integer, Boolean and String.
	ParamAny
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "Integer"
	case ParamString:
		return "String"
	default:
		return "any"
	}
}

// Param describes one positional parameter.
type Param struct {
	Name string
	Kind ParamKind
}

// Info is the static signature of an Op.
type Info struct {
	Name     string
	Category Category
	Params   []Param
}

// Arity is the exact number of arguments the builtin takes.
func (i *Info) Arity() int { return len(i.Params) }

func p(name string, kind ParamKind) Param { return Param{Name: name, Kind: kind} }

var catalogue = [opCount]Info{
	Unknown: {Name: "<unknown>"},

	Spawn:         {Name: "Spawn", Category: CategoryAction, Params: []Param{p("x", ParamInt), p("y", ParamInt)}},
	Draw:          {Name: "Draw", Category: CategoryAction},
	Plot:          {Name: "Plot", Category: CategoryAction, Params: []Param{p("x", ParamInt), p("y", ParamInt)}},
	Move:          {Name: "Move", Category: CategoryAction, Params: []Param{p("x", ParamInt), p("y", ParamInt)}},
	Size:          {Name: "Size", Category: CategoryAction, Params: []Param{p("n", ParamInt)}},
	Color:         {Name: "Color", Category: CategoryAction, Params: []Param{p("color", ParamString)}},
	ColorRGB:      {Name: "ColorRGB", Category: CategoryAction, Params: []Param{p("r", ParamInt), p("g", ParamInt), p("b", ParamInt)}},
	DrawLine:      {Name: "DrawLine", Category: CategoryAction, Params: []Param{p("dx", ParamInt), p("dy", ParamInt), p("dist", ParamInt)}},
	PlotLine:      {Name: "PlotLine", Category: CategoryAction, Params: []Param{p("x0", ParamInt), p("y0", ParamInt), p("x1", ParamInt), p("y1", ParamInt)}},
	DrawCircle:    {Name: "DrawCircle", Category: CategoryAction, Params: []Param{p("dx", ParamInt), p("dy", ParamInt), p("r", ParamInt)}},
	PlotCircle:    {Name: "PlotCircle", Category: CategoryAction, Params: []Param{p("x", ParamInt), p("y", ParamInt), p("r", ParamInt)}},
	DrawRectangle: {Name: "DrawRectangle", Category: CategoryAction, Params: []Param{p("dx", ParamInt), p("dy", ParamInt), p("dist", ParamInt), p("w", ParamInt), p("h", ParamInt)}},
	PlotRectangle: {Name: "PlotRectangle", Category: CategoryAction, Params: []Param{p("x", ParamInt), p("y", ParamInt), p("w", ParamInt), p("h", ParamInt)}},
	Fill:          {Name: "Fill", Category: CategoryAction},
	Print:         {Name: "Print", Category: CategoryAction, Params: []Param{p("value", ParamAny)}},
	Erase:         {Name: "Erase", Category: CategoryAction},

	GetActualX:      {Name: "GetActualX", Category: CategoryFunction},
	GetActualY:      {Name: "GetActualY", Category: CategoryFunction},
	GetCanvasSize:   {Name: "GetCanvasSize", Category: CategoryFunction},
	GetCanvasWidth:  {Name: "GetCanvasWidth", Category: CategoryFunction},
	GetCanvasHeight: {Name: "GetCanvasHeight", Category: CategoryFunction},
	GetBrushSize:    {Name: "GetBrushSize", Category: CategoryFunction},
	GetColorCount:   {Name: "GetColorCount", Category: CategoryFunction, Params: []Param{p("color", ParamString), p("x1", ParamInt), p("y1", ParamInt), p("x2", ParamInt), p("y2", ParamInt)}},
	IsBrushColor:    {Name: "IsBrushColor", Category: CategoryFunction, Params: []Param{p("color", ParamString)}},
	IsBrushSize:     {Name: "IsBrushSize", Category: CategoryFunction, Params: []Param{p("n", ParamInt)}},
	IsCanvasColor:   {Name: "IsCanvasColor", Category: CategoryFunction, Params: []Param{p("color", ParamString), p("dx", ParamInt), p("dy", ParamInt)}},
}

var byName = func() map[string]Op {
	m := make(map[string]Op, opCount)
	for op := Op(1); op < opCount; op++ {
		m[catalogue[op].Name] = op
	}
	return m
}()

// Lookup resolves a script name. Names are case-sensitive.
func Lookup(name string) Op {
	return byName[name]
}

// Info returns the signature of op. Unknown and out-of-range ops get the
// Unknown entry.
func (op Op) Info() *Info {
	if op >= opCount {
		return &catalogue[Unknown]
	}
	return &catalogue[op]
}

func (op Op) String() string { return op.Info().Name }

// IsValid reports whether op names a real builtin.
func (op Op) IsValid() bool { return op != Unknown && op < opCount }

// IsAction reports whether op is called as a statement.
func (op Op) IsAction() bool { return op.Info().Category == CategoryAction }

// IsFunction reports whether op is called inside expressions.
func (op Op) IsFunction() bool { return op.Info().Category == CategoryFunction }

// All returns every valid op in declaration order.
func All() []Op {
	out := make([]Op, 0, opCount-1)
	for op := Op(1); op < opCount; op++ {
		out = append(out, op)
	}
	return out
}

// Names returns the script names of every builtin in category c.
func Names(c Category) []string {
	out := make([]string, 0, opCount)
	for op := Op(1); op < opCount; op++ {
		if catalogue[op].Category == c {
			out = append(out, catalogue[op].Name)
		}
	}
	return out
}
