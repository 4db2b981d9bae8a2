// Package value defines the runtime values of PixelWallE scripts and the
// operator tables over them.
package value

import (
	"strconv"
)

// Kind is the closed set of value variants. The zero Kind is Void.
type Kind uint8

const (
	KindVoid Kind = iota
	KindInt
	KindBool
	KindString
)

// String returns the type name shown to script authors.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Integer"
	case KindBool:
		return "Boolean"
	case KindString:
		return "String"
	default:
		return "Void"
	}
}

// Value is a tagged union; only the field selected by Kind is meaningful.
type Value struct {
	Kind Kind
	Int  int64
	Bool bool
	Str  string
}

// Void is the value of nothing: a placeholder, never script-visible.
var Void = Value{}

func MakeInt(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func MakeBool(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func MakeString(v string) Value { return Value{Kind: KindString, Str: v} }

// IsVoid reports whether v carries no value.
func (v Value) IsVoid() bool { return v.Kind == KindVoid }

// Equal compares structurally; values of different kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindBool:
		return v.Bool == o.Bool
	case KindString:
		return v.Str == o.Str
	default:
		return true
	}
}

// String renders the value the way Print shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return v.Str
	default:
		return "<void>"
	}
}

// GoString renders the value with its type, for traces and test failures.
func (v Value) GoString() string {
	switch v.Kind {
	case KindString:
		return "String(" + strconv.Quote(v.Str) + ")"
	case KindVoid:
		return "Void"
	default:
		return v.Kind.String() + "(" + v.String() + ")"
	}
}
