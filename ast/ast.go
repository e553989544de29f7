// Package ast models the parsed, read-only view of a schema source file:
// models, enums, fields, enum values and the attributes attached to them,
// each carrying the byte span it occupies in the source text.
//
// Nothing in this package interprets the schema semantically — that is the
// job of package dmir and package validate. ast only remembers where things
// were written.
package ast

import "github.com/schemalint/validate/diagnostics"

// Attribute is a `@name(...)` or `@@name(...)` annotation attached to a
// field, model or enum value. Args is the raw, unparsed text between the
// parentheses (empty when the attribute takes none) — package elaborate
// is what gives it structure; ast itself never interprets attribute
// content.
type Attribute struct {
	Name string
	Args string
	Span diagnostics.Span
}

// FindAttribute returns the first attribute with the given name, and
// whether one was found.
func FindAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// EnumValue is a single member of an Enum declaration.
type EnumValue struct {
	Name       string
	Span       diagnostics.Span
	Attributes []Attribute
}

// Enum is a top-level `enum Name { ... }` declaration.
type Enum struct {
	Name   string
	Span   diagnostics.Span
	Values []EnumValue
}

// Field is a single member of a Model declaration. It may describe a
// scalar, an enum reference or a relation — dmir decides which.
type Field struct {
	Name       string
	RawType    string // as written, e.g. "Int", "String?", "Post[]"
	Span       diagnostics.Span
	Attributes []Attribute
}

// Model is a top-level `model Name { ... }` declaration.
type Model struct {
	Name       string
	Span       diagnostics.Span
	Fields     []Field
	Attributes []Attribute
}

// SchemaAst is the whole parsed source file, in declaration order.
type SchemaAst struct {
	Models []Model
	Enums  []Enum
}

// FindModel returns the model with the given name, if declared.
func (s *SchemaAst) FindModel(name string) (*Model, bool) {
	for i := range s.Models {
		if s.Models[i].Name == name {
			return &s.Models[i], true
		}
	}
	return nil, false
}

// FindEnum returns the enum with the given name, if declared.
func (s *SchemaAst) FindEnum(name string) (*Enum, bool) {
	for i := range s.Enums {
		if s.Enums[i].Name == name {
			return &s.Enums[i], true
		}
	}
	return nil, false
}

// FindField returns the field with the given name on the model, if declared.
func (m *Model) FindField(name string) (*Field, bool) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i], true
		}
	}
	return nil, false
}

// AttributeSpan locates the span of a named attribute on the field, falling
// back to the field's own span, per the narrowest-span-wins rule: attribute
// span > field span > model span.
func (f *Field) AttributeSpan(name string) diagnostics.Span {
	if a, ok := FindAttribute(f.Attributes, name); ok {
		return a.Span
	}
	return f.Span
}

// RelationAttributeSpan is shorthand for AttributeSpan(RelationAttributeName).
func (f *Field) RelationAttributeSpan() diagnostics.Span {
	return f.AttributeSpan(diagnostics.RelationAttributeName)
}
