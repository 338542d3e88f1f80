package loc

import "fmt"

// Loc is a source range. The zero value is the "unknown" location used by
// synthetic nodes such as the seeded built-in types.
type Loc struct {
	File   string
	Line   int
	Column int
	Start  int // Byte offset of the first character
	End    int // Byte offset one past the last character
}

// IsZero reports whether the location carries no position information.
func (l Loc) IsZero() bool {
	return l == Loc{}
}

func (l Loc) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Text is a string literal together with where it was written.
type Text struct {
	Value string
	Loc   Loc
}

func (t Text) String() string {
	return t.Value
}
