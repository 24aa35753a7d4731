package menu

import (
	"maps"
	"strings"
)

// Attrs holds HTML attributes for a generated tag.
type Attrs map[string]string

// Merge returns a new Attrs with the entries of other layered over a.
// Neither input is modified.
func (a Attrs) Merge(other Attrs) Attrs {
	out := make(Attrs, len(a)+len(other))
	maps.Copy(out, a)
	maps.Copy(out, other)
	return out
}

// withClass returns a copy of a whose class joins classes with any class already
// present. The class attribute is dropped when the result is empty.
func (a Attrs) withClass(classes ...string) Attrs {
	out := a.Merge(nil)
	joined := joinClasses(append(classes, out["class"])...)
	if joined == "" {
		delete(out, "class")
	} else {
		out["class"] = joined
	}
	return out
}

// joinClasses joins class lists, dropping blanks.
func joinClasses(classes ...string) string {
	var fields []string
	for _, c := range classes {
		fields = append(fields, strings.Fields(c)...)
	}
	return strings.Join(fields, " ")
}
