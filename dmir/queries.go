package dmir

import "sort"

// Models returns all models in declaration order.
func (d *Datamodel) Models() []*Model { return d.Models_ }

// Enums returns all enums in declaration order.
func (d *Datamodel) Enums() []*Enum { return d.Enums_ }

// FindModel returns the model with the given name.
func (d *Datamodel) FindModel(name string) (*Model, bool) {
	for _, m := range d.Models_ {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// FindEnum returns the enum with the given name.
func (d *Datamodel) FindEnum(name string) (*Enum, bool) {
	for _, e := range d.Enums_ {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// ScalarFields returns the model's scalar fields in declaration order.
func (m *Model) ScalarFields() []*ScalarField { return m.ScalarFields_ }

// RelationFields returns the model's relation fields in declaration order.
func (m *Model) RelationFields() []*RelationField { return m.RelationFields_ }

// FindField returns either the scalar or relation field with the given
// name, whichever exists.
func (m *Model) FindField(name string) (scalar *ScalarField, relation *RelationField, ok bool) {
	if s, found := m.FindScalarField(name); found {
		return s, nil, true
	}
	if r, found := m.FindRelationField(name); found {
		return nil, r, true
	}
	return nil, nil, false
}

// FindScalarField returns the scalar field with the given name.
func (m *Model) FindScalarField(name string) (*ScalarField, bool) {
	for _, f := range m.ScalarFields_ {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindRelationField returns the relation field with the given name.
func (m *Model) FindRelationField(name string) (*RelationField, bool) {
	for _, f := range m.RelationFields_ {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FieldIsIndexed reports whether the named field is covered by an index: it
// is the model's singular id field, carries @unique, is the first member of
// at least one @@index/@@unique declaration, or is a member of the
// composite @@id.
func (m *Model) FieldIsIndexed(name string) bool {
	if len(m.IDFieldNames) == 0 {
		if f, ok := m.FindScalarField(name); ok && f.IsID {
			return true
		}
	}
	if f, ok := m.FindScalarField(name); ok && f.IsUnique {
		return true
	}
	for _, idx := range m.Indexes {
		if len(idx.Fields) > 0 && idx.Fields[0] == name {
			return true
		}
	}
	for _, idn := range m.IDFieldNames {
		if idn == name {
			return true
		}
	}
	return false
}

// SingularIDFields returns the model's id fields when identity is a single
// scalar field marked @id (as opposed to a composite @@id([...])). Returns
// nil for composite or absent identity.
func (m *Model) SingularIDFields() []*ScalarField {
	if len(m.IDFieldNames) != 0 {
		return nil
	}
	var out []*ScalarField
	for _, f := range m.ScalarFields_ {
		if f.IsID {
			out = append(out, f)
		}
	}
	return out
}

// HasSingleIDField reports whether the model has exactly one identity
// field, singular or the sole member of a composite @@id.
func (m *Model) HasSingleIDField() bool {
	ids := m.IDFields()
	return len(ids) == 1
}

// IDFields returns the names of the model's identity fields, whether
// declared as a singular @id or a composite @@id([...]).
func (m *Model) IDFields() []string {
	if len(m.IDFieldNames) > 0 {
		return m.IDFieldNames
	}
	var out []string
	for _, f := range m.ScalarFields_ {
		if f.IsID {
			out = append(out, f.Name)
		}
	}
	return out
}

// Indices returns the model's @@index/@@unique declarations.
func (m *Model) Indices() []Index { return m.Indexes }

// UniqueCriterion is a named-or-not set of fields that together identify a
// row, plus whether every member is required ("strict").
type UniqueCriterion struct {
	Fields []string
	Strict bool
}

// LooseUniqueCriterias returns every declared uniqueness key: the identity
// criterion (singular @id or composite @@id) and every @@unique/@unique
// index, regardless of field optionality.
func (m *Model) LooseUniqueCriterias() []UniqueCriterion {
	var out []UniqueCriterion
	if ids := m.IDFields(); len(ids) > 0 {
		out = append(out, UniqueCriterion{Fields: ids, Strict: m.allRequired(ids)})
	}
	for _, idx := range m.Indexes {
		if idx.IsUnique {
			out = append(out, UniqueCriterion{Fields: idx.Fields, Strict: m.allRequired(idx.Fields)})
		}
	}
	for _, f := range m.ScalarFields_ {
		if f.IsUnique {
			out = append(out, UniqueCriterion{Fields: []string{f.Name}, Strict: f.Arity.IsRequired()})
		}
	}
	return out
}

// StrictUniqueCriteriasDisregardingUnsupported returns the subset of
// LooseUniqueCriterias whose members are all required and none are of an
// unsupported native type.
func (m *Model) StrictUniqueCriteriasDisregardingUnsupported() []UniqueCriterion {
	var out []UniqueCriterion
	for _, c := range m.LooseUniqueCriterias() {
		if !c.Strict {
			continue
		}
		supported := true
		for _, name := range c.Fields {
			if f, ok := m.FindScalarField(name); ok && f.Type.Kind == KindUnsupported {
				supported = false
				break
			}
		}
		if supported {
			out = append(out, c)
		}
	}
	return out
}

func (m *Model) allRequired(names []string) bool {
	for _, n := range names {
		f, ok := m.FindScalarField(n)
		if !ok || !f.Arity.IsRequired() {
			return false
		}
	}
	return true
}

// AutoIncrementFields returns the scalar fields whose default is autoincrement().
func (m *Model) AutoIncrementFields() []*ScalarField {
	var out []*ScalarField
	for _, f := range m.ScalarFields_ {
		if f.Default.IsAutoIncrement() {
			out = append(out, f)
		}
	}
	return out
}

// FindRelatedField searches the target model's relation fields for the one
// field to the related field of `field`: same relation name, target model
// equal to field's owning model, and — for self-relations — not the same
// field instance. This is a search, not a stored edge, by design: it keeps
// the model arena free of back-references that would need to be kept in
// sync.
func (d *Datamodel) FindRelatedField(owningModelName string, field *RelationField) (*Model, *RelationField, bool) {
	related, ok := d.FindModel(field.RelationInfo.To)
	if !ok {
		return nil, nil, false
	}
	for _, candidate := range related.RelationFields_ {
		if candidate == field {
			continue
		}
		if candidate.RelationInfo.To != owningModelName {
			continue
		}
		if candidate.RelationInfo.Name != field.RelationInfo.Name {
			continue
		}
		return related, candidate, true
	}
	return nil, nil, false
}

// SortedEqual reports whether two field-name slices contain the same
// members, ignoring order — used to compare `references` against a loose
// unique criterion "as a set".
func SortedEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := append([]string(nil), a...), append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// ExactlyEqual reports whether two field-name slices are equal element-wise
// in order — used for the "same order of fields" rule.
func ExactlyEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
