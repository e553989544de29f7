package diagnostics

import "fmt"

// Kind classifies a Diagnostic. The set is closed and mirrors the table in
// the validator's external interface contract: every rule in package
// validate attaches one of these kinds when it pushes a diagnostic.
type Kind int

const (
	// KindValidation is a plain, unattributed validation error.
	KindValidation Kind = iota
	// KindAttributeValidation blames a specific attribute (e.g. @relation, @id).
	KindAttributeValidation
	// KindFieldValidation blames a specific field of a specific model.
	KindFieldValidation
	// KindModelValidation blames a model as a whole.
	KindModelValidation
	// KindEnumValidation blames an enum as a whole.
	KindEnumValidation
	// KindConnectorError wraps an error surfaced by a connector's own validation hooks.
	KindConnectorError
	// KindMultipleIndexesWithSameName is raised when two indexes share a name
	// and the connector does not allow it.
	KindMultipleIndexesWithSameName
)

// Message-contract constants. Literal text is part of the validator's public
// interface: tests assert it byte-for-byte.
const (
	RelationAttributeName        = "relation"
	RelationAttributeNameWithAt  = "@relation"
	PrismaFormatHint             = "You can run `prisma format` to fix this automatically."
)

// Diagnostic is a single, immutable validation finding.
//
// Equality is defined over (Kind, Message, Span, ModelName, FieldName,
// EnumName, AttributeName, IndexName) — the fields the golden test suite
// compares against.
type Diagnostic struct {
	Kind          Kind
	Message       string
	Span          Span
	ModelName     string
	FieldName     string
	EnumName      string
	AttributeName string
	IndexName     string
}

// Equal reports whether two diagnostics carry the same kind, message,
// span and attribution context.
func (d Diagnostic) Equal(other Diagnostic) bool {
	return d.Kind == other.Kind &&
		d.Message == other.Message &&
		d.Span == other.Span &&
		d.ModelName == other.ModelName &&
		d.FieldName == other.FieldName &&
		d.EnumName == other.EnumName &&
		d.AttributeName == other.AttributeName &&
		d.IndexName == other.IndexName
}

// Error implements the error interface so a Diagnostic can be used wherever
// plain Go errors are expected (e.g. wrapped by callers).
func (d Diagnostic) Error() string {
	return d.Message
}

// NewValidationError builds an unattributed validation diagnostic.
func NewValidationError(message string, span Span) Diagnostic {
	return Diagnostic{Kind: KindValidation, Message: message, Span: span}
}

// NewAttributeValidationError builds a diagnostic blaming a named attribute.
func NewAttributeValidationError(message, attributeName string, span Span) Diagnostic {
	return Diagnostic{Kind: KindAttributeValidation, Message: message, AttributeName: attributeName, Span: span}
}

// NewFieldValidationError builds a diagnostic blaming a field of a model.
func NewFieldValidationError(message, modelName, fieldName string, span Span) Diagnostic {
	return Diagnostic{Kind: KindFieldValidation, Message: message, ModelName: modelName, FieldName: fieldName, Span: span}
}

// NewModelValidationError builds a diagnostic blaming a model as a whole.
func NewModelValidationError(message, modelName string, span Span) Diagnostic {
	return Diagnostic{Kind: KindModelValidation, Message: message, ModelName: modelName, Span: span}
}

// NewEnumValidationError builds a diagnostic blaming an enum as a whole.
func NewEnumValidationError(message, enumName string, span Span) Diagnostic {
	return Diagnostic{Kind: KindEnumValidation, Message: message, EnumName: enumName, Span: span}
}

// NewConnectorError wraps an error returned by a connector's validation hook.
func NewConnectorError(message string, span Span) Diagnostic {
	return Diagnostic{Kind: KindConnectorError, Message: message, Span: span}
}

// NewMultipleIndexesWithSameNameError flags a duplicate index name.
func NewMultipleIndexesWithSameNameError(indexName string, span Span) Diagnostic {
	return Diagnostic{
		Kind:      KindMultipleIndexesWithSameName,
		Message:   fmt.Sprintf("The index name `%s` is already used on a different index.", indexName),
		IndexName: indexName,
		Span:      span,
	}
}

// StateError is panicked when a rule observes a caller-invariant breach: a
// lookup the standardiser was supposed to guarantee (e.g. find_model on a
// relation's target) comes back empty. It is never returned as a Diagnostic
// — see package validate's Validate/PostStandardisationValidate for the
// recover boundary.
type StateError struct {
	Reason string
}

func (e StateError) Error() string {
	return "internal validator invariant violated: " + e.Reason
}

// Raise panics with a StateError. Rules call this only for invariant
// breaches that signal a bug in the caller's standardisation step, never
// for anything a schema author could have written.
func Raise(reason string) {
	panic(StateError{Reason: reason})
}
