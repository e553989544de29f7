// Package dmir is the elaborated data-model intermediate representation
// consumed by package validate: models with scalar fields, relation fields,
// composite identity/unique criteria, enums and defaults, plus the query
// surface the rule engine needs (find-by-name, unique criteria, auto
// increment fields, opposite-relation lookup).
//
// A Datamodel is built once from the AST (package elaborate in this module)
// and then handed to the validator twice: once before standardisation
// (package standardize) fills in back-relation fields, once after.
package dmir

import "github.com/schemalint/validate/diagnostics"

// Arity is the cardinality of a field.
type Arity int

const (
	Required Arity = iota
	Optional
	List
)

func (a Arity) IsRequired() bool { return a == Required }
func (a Arity) IsOptional() bool { return a == Optional }
func (a Arity) IsList() bool     { return a == List }

// ScalarTypeKind distinguishes base scalars, enum references and
// unsupported native types.
type ScalarTypeKind int

const (
	KindString ScalarTypeKind = iota
	KindBoolean
	KindInt
	KindBigInt
	KindFloat
	KindDecimal
	KindDateTime
	KindJson
	KindBytes
	KindEnum
	KindUnsupported
)

// FieldType is the resolved type of a scalar field: a base scalar, a
// reference to a declared enum, or an opaque unsupported native type.
type FieldType struct {
	Kind         ScalarTypeKind
	EnumName     string // set iff Kind == KindEnum
	Unsupported  string // set iff Kind == KindUnsupported, the raw type text
}

// IsCompatibleWith mirrors FieldType::is_compatible_with: two types are
// compatible when they reduce to the same scalar kind (and, for enums, the
// same enum). Native-type fallback comparison is layered on top of this by
// the caller (see package validate's relation type-matching rule), because
// that comparison additionally needs the connector's default native type.
func (t FieldType) IsCompatibleWith(other FieldType) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == KindEnum {
		return t.EnumName == other.EnumName
	}
	return true
}

// NativeType is a connector-specific storage type annotation, e.g.
// `@db.VarChar(255)`.
type NativeType struct {
	Name string
	Args []string
}

// DefaultKind classifies the expression attached to a field's @default.
type DefaultKind int

const (
	DefaultNone DefaultKind = iota
	DefaultLiteralBool
	DefaultLiteralInt
	DefaultLiteralFloat
	DefaultLiteralString
	DefaultEnumValue
	DefaultExpression
)

// Default is a field's @default(...) value, if any.
type Default struct {
	Kind           DefaultKind
	Bool           bool
	Int            int64
	Float          float64
	String         string
	EnumValue      string
	ExpressionName string // "autoincrement", "now", "uuid", "cuid", "dbgenerated", ...
}

// IsAutoIncrement reports whether the default is the autoincrement() expression.
func (d Default) IsAutoIncrement() bool {
	return d.Kind == DefaultExpression && d.ExpressionName == "autoincrement"
}

// ScalarField is a field whose value is a scalar, an enum reference or an
// unsupported type (never a relation).
type ScalarField struct {
	Name       string
	Span       diagnostics.Span
	Attributes []diagnostics.Span // unused placeholder kept for symmetry; real attribute spans live on the ast.Field
	Type       FieldType
	Arity      Arity
	IsID       bool
	IsUnique   bool
	IsUpdatedAt bool
	NativeType *NativeType
	Default    Default
}

// RelationInfo is the parsed content of a relation field's @relation(...)
// attribute.
type RelationInfo struct {
	To         string
	Name       string
	Fields     []string
	References []string
}

// RelationField is a field whose value is another model.
type RelationField struct {
	Name         string
	Span         diagnostics.Span
	Arity        Arity
	RelationInfo RelationInfo
	IsIgnored    bool
}

// Index is a named or unnamed `@@index`/`@@unique` declaration on a model.
type Index struct {
	Name          string // "" if unnamed
	Fields        []string
	IsUnique      bool
	Span          diagnostics.Span
	AttributeSpan diagnostics.Span
}

// Model is a fully elaborated model declaration.
type Model struct {
	Name           string
	Span           diagnostics.Span
	DatabaseName   string
	IsIgnored      bool
	IsView         bool
	ScalarFields_  []*ScalarField
	RelationFields_ []*RelationField
	IDFieldNames   []string // composite @@id([...]); empty if identity is a single @id field
	Indexes        []Index
}

// Enum is a fully elaborated enum declaration.
type Enum struct {
	Name   string
	Span   diagnostics.Span
	Values []string
}

// Datasource carries the two connector facets spec.md §6 describes.
type Datasource struct {
	Provider          string
	CombinedConnector Capabilities
	ActiveConnector   Connector
}

// Capabilities is the boolean-predicate facet of a datasource. Its concrete
// implementation is connector.Capabilities; Datasource references it via
// this interface to avoid a cyclic import.
type Capabilities interface {
	SupportsMultipleIndexesWithSameName() bool
	SupportsScalarLists() bool
	SupportsJSON() bool
	SupportsRelationsOverNonUniqueCriteria() bool
	AllowsRelationFieldsInArbitraryOrder() bool
	SupportsMultipleAutoIncrement() bool
	SupportsNonIDAutoIncrement() bool
	SupportsNonIndexedAutoIncrement() bool
}

// Connector is the structural-validation facet of a datasource.
type Connector interface {
	ValidateField(field *ScalarField) error
	ValidateModel(model *Model) error
	DefaultNativeTypeForScalarType(kind ScalarTypeKind) *NativeType
}

// Datamodel is the root elaborated view handed to the rule engine.
type Datamodel struct {
	Models_    []*Model
	Enums_     []*Enum
	Datasource *Datasource
}
