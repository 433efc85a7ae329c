package iconindex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/iconcache/internal/util/sets"
)

// Form selects how an Entry is shaped and serialized. It is uniform for a run.
type Form int

const (
	// FormSet serializes as a sorted JSON array of state names.
	FormSet Form = iota
	// FormMap serializes as a JSON object mapping each state name to true.
	FormMap
)

// FormFor maps the --assoc switch to a Form.
func FormFor(assoc bool) Form {
	if assoc {
		return FormMap
	}
	return FormSet
}

func (f Form) String() string {
	switch f {
	case FormSet:
		return "set"
	case FormMap:
		return "map"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Entry is the reshaped state list of one icon file: unique names in
// ascending code-point order, tagged with the serialization form.
type Entry struct {
	form   Form
	states []string
}

// NewEntry deduplicates and sorts states. The input slice is not modified.
func NewEntry(form Form, states []string) Entry {
	return Entry{form: form, states: sets.Sorted(sets.New(states...))}
}

// Form returns the entry's serialization form.
func (e Entry) Form() Form { return e.form }

// Len returns the number of unique state names.
func (e Entry) Len() int { return len(e.states) }

// States returns a copy of the sorted state names.
func (e Entry) States() []string { return slices.Clone(e.states) }

// Has reports whether the entry contains state.
func (e Entry) Has(state string) bool {
	_, found := slices.BinarySearch(e.states, state)
	return found
}

// MarshalJSON emits an array for FormSet and an object of true values for FormMap.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	switch e.form {
	case FormSet:
		buf.WriteByte('[')
		for i, s := range e.states {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, s); err != nil {
				return nil, err
			}
		}
		buf.WriteByte(']')
	case FormMap:
		buf.WriteByte('{')
		for i, s := range e.states {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, s); err != nil {
				return nil, err
			}
			buf.WriteString(":true")
		}
		buf.WriteByte('}')
	default:
		return nil, fmt.Errorf("iconindex: unknown entry form %v", e.form)
	}
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string without HTML escaping, so names
// like "a<b" stay readable in the emitted cache.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
