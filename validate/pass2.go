package validate

import (
	"fmt"

	"github.com/schemalint/validate/diagnostics"
)

// pass2Rules is the fixed, ordered rule list for the post-standardisation
// pass; it assumes back-relation fields already exist.
var pass2Rules = []func(rc *ruleContext){
	ruleR14OppositeFieldPresence,
	ruleR15IgnorePropagation,
	ruleR16OneToManyShape,
	ruleR17WrongSideFields,
	ruleR18OneToOneShape,
	ruleR19ManyToManyID,
}

// ruleR14OppositeFieldPresence requires every relation field to have a
// matching field on the target model.
func ruleR14OppositeFieldPresence(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			if _, _, found := rc.Dm.FindRelatedField(model.Name, rel); !found {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("The relation field `%s` on model `%s` is missing an opposite relation field on the model `%s`. Either run `prisma format` or add it manually.", rel.Name, model.Name, rel.RelationInfo.To),
					model.Name, rel.Name, rc.fieldSpan(model.Name, rel.Name)))
			}
		}
	}
}

// ruleR15IgnorePropagation requires `@ignore` on a relation field whose
// target model is ignored, unless the owning model is itself ignored.
func ruleR15IgnorePropagation(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		if model.IsIgnored {
			continue
		}
		for _, rel := range model.RelationFields() {
			related, ok := rc.Dm.FindModel(rel.RelationInfo.To)
			if !ok || !related.IsIgnored || rel.IsIgnored {
				continue
			}
			rc.push(model.Name, diagnostics.NewFieldValidationError(
				fmt.Sprintf("The relation field `%s` on model `%s` must be annotated with `@ignore` because the model it points to, `%s`, is marked with `@@ignore`.", rel.Name, model.Name, related.Name),
				model.Name, rel.Name, rc.fieldSpan(model.Name, rel.Name)))
		}
	}
}

// ruleR16OneToManyShape requires the singular side of a one-to-many
// relation to carry both `fields` and `references`.
func ruleR16OneToManyShape(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			related, opposite, found := rc.Dm.FindRelatedField(model.Name, rel)
			if !found || rel.Arity.IsList() {
				continue
			}
			if !rel.Arity.IsList() && opposite.Arity.IsList() {
				if len(rel.RelationInfo.Fields) == 0 {
					rc.push(model.Name, diagnostics.NewFieldValidationError(
						fmt.Sprintf("The relation field `%s` on model `%s` must specify the `fields` argument in the %s attribute. %s",
							rel.Name, model.Name, diagnostics.RelationAttributeNameWithAt, diagnostics.PrismaFormatHint),
						model.Name, rel.Name, rc.relationAttributeSpan(model.Name, rel.Name)))
				}
				if len(rel.RelationInfo.References) == 0 {
					rc.push(model.Name, diagnostics.NewFieldValidationError(
						fmt.Sprintf("The relation field `%s` on model `%s` must specify the `references` argument in the %s attribute.",
							rel.Name, model.Name, diagnostics.RelationAttributeNameWithAt),
						model.Name, rel.Name, rc.relationAttributeSpan(model.Name, rel.Name)))
				}
			}
			_ = related
		}
	}
}

// ruleR17WrongSideFields forbids `fields`/`references` on the list side of
// a one-to-many relation.
func ruleR17WrongSideFields(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			_, opposite, found := rc.Dm.FindRelatedField(model.Name, rel)
			if !found {
				continue
			}
			if rel.Arity.IsList() && !opposite.Arity.IsList() {
				if len(rel.RelationInfo.Fields) != 0 || len(rel.RelationInfo.References) != 0 {
					rc.push(model.Name, diagnostics.NewFieldValidationError(
						fmt.Sprintf("The relation field `%s` on model `%s` must not specify the `fields` or `references` argument in the %s attribute. You must only specify it on the opposite field `%s`.",
							rel.Name, model.Name, diagnostics.RelationAttributeNameWithAt, opposite.Name),
						model.Name, rel.Name, rc.relationAttributeSpan(model.Name, rel.Name)))
				}
			}
		}
	}
}

// ruleR18OneToOneShape enforces that exactly one side carries both `fields`
// and `references` when both sides are singular. Each relation field is
// judged only from its own perspective — references, then fields — matching
// the engine's model-major, field-minor iteration order. The opposite
// field, visited on its own model's turn through the outer loop, produces
// the symmetric diagnostic on its own account; nothing here pushes into
// the other model's bag directly.
func ruleR18OneToOneShape(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			related, opposite, found := rc.Dm.FindRelatedField(model.Name, rel)
			if !found {
				continue
			}
			if rel.Arity.IsList() || opposite.Arity.IsList() {
				continue
			}

			thisHasFields := len(rel.RelationInfo.Fields) != 0
			thisHasRefs := len(rel.RelationInfo.References) != 0
			otherHasFields := len(opposite.RelationInfo.Fields) != 0
			otherHasRefs := len(opposite.RelationInfo.References) != 0

			anyError := false
			if !thisHasRefs && !otherHasRefs {
				rc.push(model.Name, oneToOneError(rel.Name, model.Name, opposite.Name, related.Name, "references", true, rc.relationAttributeSpan(model.Name, rel.Name)))
				anyError = true
			}
			if !thisHasFields && !otherHasFields {
				rc.push(model.Name, oneToOneError(rel.Name, model.Name, opposite.Name, related.Name, "fields", true, rc.relationAttributeSpan(model.Name, rel.Name)))
				anyError = true
			}
			if thisHasRefs && otherHasRefs {
				rc.push(model.Name, oneToOneError(rel.Name, model.Name, opposite.Name, related.Name, "references", false, rc.relationAttributeSpan(model.Name, rel.Name)))
				anyError = true
			}
			if thisHasFields && otherHasFields {
				rc.push(model.Name, oneToOneError(rel.Name, model.Name, opposite.Name, related.Name, "fields", false, rc.relationAttributeSpan(model.Name, rel.Name)))
				anyError = true
			}
			if anyError {
				continue
			}

			if thisHasFields && otherHasRefs {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("The relation field `%s` on model `%s` provides the `fields` argument in the %s attribute. And the related field `%s` on model `%s` provides the `references` argument. You must provide both arguments on the same side.",
						rel.Name, model.Name, diagnostics.RelationAttributeNameWithAt, opposite.Name, related.Name),
					model.Name, rel.Name, rc.relationAttributeSpan(model.Name, rel.Name)))
				continue
			}

			if rel.Arity.IsRequired() && otherHasRefs {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("The relation field `%s` on model `%s` is required. This is no longer valid because it's not possible to enforce this constraint on the database level. Please change the field type from `%s` to `%s?` to fix this.",
						rel.Name, model.Name, related.Name, related.Name),
					model.Name, rel.Name, rc.fieldSpan(model.Name, rel.Name)))
			}
		}
	}
}

func oneToOneError(thisName, thisModel, otherName, otherModel, arg string, absent bool, span diagnostics.Span) diagnostics.Diagnostic {
	if absent {
		return diagnostics.NewFieldValidationError(
			fmt.Sprintf("The relation fields `%s` on Model `%s` and `%s` on Model `%s` do not provide the `%s` argument in the %s attribute. You have to provide it on one of the two fields.",
				thisName, thisModel, otherName, otherModel, arg, diagnostics.RelationAttributeNameWithAt),
			thisModel, thisName, span)
	}
	return diagnostics.NewFieldValidationError(
		fmt.Sprintf("The relation fields `%s` on Model `%s` and `%s` on Model `%s` both provide the `%s` argument in the %s attribute. You have to provide it only on one of the two fields.",
			thisName, thisModel, otherName, otherModel, arg, diagnostics.RelationAttributeNameWithAt),
		thisModel, thisName, span)
}

// ruleR19ManyToManyID requires the related model of a many-to-many relation
// to have a single `@id` field.
func ruleR19ManyToManyID(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			related, opposite, found := rc.Dm.FindRelatedField(model.Name, rel)
			if !found || !rel.Arity.IsList() || !opposite.Arity.IsList() {
				continue
			}
			if len(related.SingularIDFields()) != 1 {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("The relation field `%s` on model `%s` references `%s` which does not have an `@id` field. Models without `@id` cannot be part of a many to many relation. Use an explicit intermediate model to represent this relationship.",
						rel.Name, model.Name, related.Name),
					model.Name, rel.Name, rc.fieldSpan(model.Name, rel.Name)))
			}
		}
	}
}
