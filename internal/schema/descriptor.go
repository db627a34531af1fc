// Package schema describes, per aggregate kind, which fields back a unique
// or foreign-key constraint. The descriptors are consulted by the database
// error classifier to attribute a constraint failure to a payload field.
package schema

type ConstraintKind string

const (
	Unique     ConstraintKind = "unique"
	ForeignKey ConstraintKind = "foreign_key"
)

// Field is one constrained column. Name is both the payload key and the
// column name.
type Field struct {
	Name       string
	Kind       ConstraintKind
	References string
}

// Descriptor lists the constrained fields of one table in match priority
// order, followed by the descriptors of its owned children.
type Descriptor struct {
	Entity string
	Fields []Field
	Nested []*Descriptor
}

// FieldNames returns the field names in priority order, nested ones last.
func (d *Descriptor) FieldNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	for _, n := range d.Nested {
		names = append(names, n.FieldNames()...)
	}
	return names
}

func fk(name, references string) Field {
	return Field{Name: name, Kind: ForeignKey, References: references}
}

func unique(name string) Field {
	return Field{Name: name, Kind: Unique}
}
