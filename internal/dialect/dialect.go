package dialect

import "fmt"

// Kind represents a foreign language "dialect" that a rejected line may
// resemble.
type Kind uint8

const (
	Unknown Kind = iota
	Python
	Go
	CFamily

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Python:
		return "python"
	case Go:
		return "go"
	case CFamily:
		return "c-family"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}
