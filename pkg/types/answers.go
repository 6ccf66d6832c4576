package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Answers maps variable names to resolved values in declaration order.
// Values are string, bool, int or []string. Once frozen it is read-only.
type Answers struct {
	names  []string
	values map[string]any
	frozen bool
}

// NewAnswers returns an empty, writable Answers
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]any)}
}

// Set records a value. Re-setting a name keeps its original position.
// Set panics on a frozen Answers.
func (a *Answers) Set(name string, value any) {
	if a.frozen {
		panic(fmt.Sprintf("answers: set %q on frozen answers", name))
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the value for name
func (a *Answers) Get(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Names returns the variable names in declaration order
func (a *Answers) Names() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

func (a *Answers) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Freeze makes the Answers immutable
func (a *Answers) Freeze() { a.frozen = true }

func (a *Answers) Frozen() bool { return a.frozen }

// Map returns a copy of the values as a plain map
func (a *Answers) Map() map[string]any {
	out := make(map[string]any, a.Len())
	if a == nil {
		return out
	}
	for _, n := range a.names {
		out[n] = a.values[n]
	}
	return out
}

// With returns a writable copy of a with one extra binding. It is used to
// evaluate a candidate value without committing it.
func (a *Answers) With(name string, value any) *Answers {
	c := NewAnswers()
	if a != nil {
		for _, n := range a.names {
			c.Set(n, a.values[n])
		}
	}
	c.Set(name, value)
	return c
}

// MarshalJSON encodes the answers as an object in declaration order
func (a *Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a != nil {
		for i, n := range a.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(a.values[n])
			if err != nil {
				return nil, fmt.Errorf("answers: encode %q: %w", n, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
