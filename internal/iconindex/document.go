package iconindex

import (
	"bytes"
	"fmt"
)

// Document is the emitted cache: the aggregate plus the revision of the
// tree it was built from, when known.
type Document struct {
	Revision *string
	Icons    *Aggregate
}

// NewDocument builds a document. An empty revision is emitted as null.
func NewDocument(icons *Aggregate, revision string) Document {
	d := Document{Icons: icons}
	if revision != "" {
		d.Revision = &revision
	}
	return d
}

// MarshalJSON emits exactly {"revision": ..., "icons": {...}} in that order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"revision":`)
	if d.Revision == nil {
		buf.WriteString("null")
	} else if err := writeString(&buf, *d.Revision); err != nil {
		return nil, fmt.Errorf("marshal revision: %w", err)
	}

	buf.WriteString(`,"icons":`)
	icons := d.Icons
	if icons == nil {
		icons = NewAggregate()
	}
	b, err := icons.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(b)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
