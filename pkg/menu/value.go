package menu

import (
	"fmt"
	"html/template"

	"gopkg.in/yaml.v3"
)

// LookupTag marks a YAML scalar as a named lookup, e.g. `url: !lookup root_path`.
const LookupTag = "!lookup"

// Kind identifies which shape a Value holds.
type Kind int

const (
	// Absent is the zero Value: the field was not supplied.
	Absent Kind = iota
	// Static holds a literal returned unchanged.
	Static
	// Named holds the name of a host capability invoked without arguments.
	Named
	// Deferred holds a computation evaluated against the host on demand.
	Deferred
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Static:
		return "literal"
	case Named:
		return "lookup"
	case Deferred:
		return "deferred"
	default:
		return "absent"
	}
}

// DeferredFunc computes a value against the host at render time.
type DeferredFunc func(h Host) (any, error)

// Value is a field that may be a literal, a named host lookup or a deferred
// computation. The zero Value is absent.
type Value struct {
	kind Kind
	lit  any
	name string
	fn   DeferredFunc
}

// Literal returns a Value resolving to v.
func Literal(v any) Value {
	return Value{kind: Static, lit: v}
}

// Lookup returns a Value resolving to the result of the host capability name.
func Lookup(name string) Value {
	return Value{kind: Named, name: name}
}

// Compute returns a Value resolving to the result of fn, called lazily with the host.
func Compute(fn DeferredFunc) Value {
	if fn == nil {
		return Value{}
	}
	return Value{kind: Deferred, fn: fn}
}

// Kind reports the shape of v.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether v was supplied.
func (v Value) IsSet() bool { return v.kind != Absent }

// Resolve evaluates v against h. Absent values resolve to nil.
func (v Value) Resolve(h Host) (any, error) {
	switch v.kind {
	case Static:
		return v.lit, nil
	case Named:
		return call(h, v.name)
	case Deferred:
		return v.fn(h)
	default:
		return nil, nil
	}
}

// String describes v for logs and test failures.
func (v Value) String() string {
	switch v.kind {
	case Static:
		return fmt.Sprintf("%v", v.lit)
	case Named:
		return LookupTag + " " + v.name
	case Deferred:
		return "<deferred>"
	default:
		return ""
	}
}

// UnmarshalYAML decodes scalars as literals and `!lookup name` as named lookups.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == LookupTag {
		if node.Kind != yaml.ScalarNode || node.Value == "" {
			return fmt.Errorf("line %d: %s expects a capability name", node.Line, LookupTag)
		}
		*v = Lookup(node.Value)
		return nil
	}

	var lit any
	if err := node.Decode(&lit); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	if lit == nil {
		*v = Value{}
		return nil
	}

	*v = Literal(lit)
	return nil
}

// truthy follows the host convention that only nil and false are false.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	default:
		return true
	}
}

// text converts a resolved value to a string. Nil yields "".
func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case template.HTML:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
