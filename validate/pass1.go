package validate

import (
	"fmt"
	"strings"

	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/diagnostics"
	"github.com/schemalint/validate/dmir"
)

// pass1Rules is the fixed, ordered rule list for the pre-standardisation
// pass. Order is part of the message contract (spec.md §4.6): diagnostics
// appear in the order rules are listed here.
var pass1Rules = []func(rc *ruleContext){
	ruleR1NameValidity,
	ruleR2IndexNaming,
	ruleR20DatabaseNameClash,
	ruleR3IdentityFieldArity,
	ruleR4StrictUniqueCriterion,
	ruleR5ReservedNames,
	ruleR6AmbiguousRelations,
	ruleR7ScalarListSupport,
	ruleR8JSONSupport,
	ruleR9ConnectorValidation,
	ruleR10EnumDefaults,
	ruleR22DefaultValueTypeMatch,
	ruleR11AutoIncrement,
	ruleR23ShardKeyFields,
	ruleR12RelationBaseFields,
	ruleR13RelationReferencedFields,
}

// ruleR1NameValidity checks every model, enum, field and enum-value name
// against the identifier grammar, plus the names of attributes attached to
// fields. Attributes attached to models or enum values are not checked. One
// diagnostic per offending name.
func ruleR1NameValidity(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		am := rc.astModel(model.Name)
		if !isValidIdentifier(model.Name) {
			rc.push(model.Name, diagnostics.NewModelValidationError(
				fmt.Sprintf("The name of the model `%s` is invalid. It must start with a letter or underscore and contain only letters, digits and underscores.", model.Name),
				model.Name, am.Span))
		}
		for _, f := range am.Fields {
			if !isValidIdentifier(f.Name) {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("The name of the field `%s` is invalid. It must start with a letter or underscore and contain only letters, digits and underscores.", f.Name),
					model.Name, f.Name, f.Span))
			}
			for _, a := range f.Attributes {
				if !isValidIdentifier(a.Name) {
					rc.push(model.Name, diagnostics.NewAttributeValidationError(
						fmt.Sprintf("The name of the attribute `@%s` is invalid.", a.Name),
						a.Name, a.Span))
				}
			}
		}
	}
	for _, enum := range rc.Dm.Enums() {
		ae := rc.astEnum(enum.Name)
		if !isValidIdentifier(enum.Name) {
			rc.Outer.Push(diagnostics.NewEnumValidationError(
				fmt.Sprintf("The name of the enum `%s` is invalid. It must start with a letter or underscore and contain only letters, digits and underscores.", enum.Name),
				enum.Name, ae.Span))
		}
		for _, v := range ae.Values {
			if !isValidIdentifier(v.Name) {
				rc.Outer.Push(diagnostics.NewEnumValidationError(
					fmt.Sprintf("The name of the enum value `%s` is invalid. It must start with a letter or underscore and contain only letters, digits and underscores.", v.Name),
					enum.Name, v.Span))
			}
		}
	}
}

// ruleR2IndexNaming accumulates named indexes across all models in
// declaration order; the second and later occurrences of a shared name are
// flagged unless the connector allows duplicate index names.
func ruleR2IndexNaming(rc *ruleContext) {
	if rc.Caps != nil && rc.Caps.SupportsMultipleIndexesWithSameName() {
		return
	}
	seen := make(map[string]bool)
	for _, model := range rc.Dm.Models() {
		for _, idx := range model.Indexes {
			if idx.Name == "" {
				continue
			}
			if seen[idx.Name] {
				rc.push(model.Name, diagnostics.NewMultipleIndexesWithSameNameError(idx.Name, idx.AttributeSpan))
				continue
			}
			seen[idx.Name] = true
		}
	}
}

// ruleR20DatabaseNameClash flags two models (or views) that resolve to the
// same physical table name, whether via @@map or the bare model name.
func ruleR20DatabaseNameClash(rc *ruleContext) {
	seen := make(map[string]string) // physical name -> first model name
	for _, model := range rc.Dm.Models() {
		physical := model.DatabaseName
		if physical == "" {
			physical = model.Name
		}
		if first, ok := seen[physical]; ok {
			rc.push(model.Name, diagnostics.NewModelValidationError(
				fmt.Sprintf("The model `%s` and the model `%s` cannot both resolve to the database table `%s`. Give one of them a different `@@map` name.", first, model.Name, physical),
				model.Name, rc.modelSpan(model.Name)))
			continue
		}
		seen[physical] = model.Name
	}
}

// ruleR3IdentityFieldArity requires every @id scalar field to be required.
func ruleR3IdentityFieldArity(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		if model.IsIgnored {
			continue
		}
		for _, f := range model.ScalarFields() {
			if f.IsID && !f.Arity.IsRequired() {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					"Fields that are marked as id must be required.",
					model.Name, f.Name, rc.attributeSpan(model.Name, f.Name, "id")))
			}
		}
	}
}

// ruleR4StrictUniqueCriterion enforces at most one identity criterion and
// at least one strict (all-required) unique criterion per non-ignored model.
func ruleR4StrictUniqueCriterion(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		if model.IsIgnored {
			continue
		}
		singularIDCount := 0
		for _, f := range model.ScalarFields() {
			if f.IsID {
				singularIDCount++
			}
		}
		compositeID := len(model.IDFieldNames) > 0

		switch {
		case singularIDCount > 1:
			rc.push(model.Name, diagnostics.NewModelValidationError(
				"At most one field must be marked as the id field with the `@id` attribute.",
				model.Name, rc.modelSpan(model.Name)))
		case singularIDCount == 1 && compositeID:
			rc.push(model.Name, diagnostics.NewModelValidationError(
				"Each model must have at most one id criteria. You can't have `@id` and `@@id` at the same time.",
				model.Name, rc.modelSpan(model.Name)))
		}

		if len(model.StrictUniqueCriteriasDisregardingUnsupported()) == 0 {
			var lines []string
			for _, c := range model.LooseUniqueCriterias() {
				if !c.Strict {
					lines = append(lines, "- "+strings.Join(c.Fields, ", "))
				}
			}
			msg := "Each model must have at least one unique criteria that has only required fields. Either mark a single field with `@id`, `@unique` or add a multi field criterion with `@@id([])` or `@@unique([])` to the model."
			if len(lines) > 0 {
				msg += "\n" + strings.Join(lines, "\n")
			}
			rc.push(model.Name, diagnostics.NewModelValidationError(msg, model.Name, rc.modelSpan(model.Name)))
		}
	}
}

// ruleR5ReservedNames rejects model and enum names from the closed
// reserved-name table.
func ruleR5ReservedNames(rc *ruleContext) {
	const hint = "Read more at https://pris.ly/d/naming-process"
	for _, model := range rc.Dm.Models() {
		if dmir.IsReservedTypeName(model.Name) {
			rc.push(model.Name, diagnostics.NewModelValidationError(
				fmt.Sprintf("The model name `%s` is invalid. It is a reserved name. Please change it. %s", model.Name, hint),
				model.Name, rc.modelSpan(model.Name)))
		}
	}
	for _, enum := range rc.Dm.Enums() {
		if dmir.IsReservedTypeName(enum.Name) {
			rc.Outer.Push(diagnostics.NewEnumValidationError(
				fmt.Sprintf("The enum name `%s` is invalid. It is a reserved name. Please change it. %s", enum.Name, hint),
				enum.Name, rc.astEnum(enum.Name).Span))
		}
	}
}

// ruleR6AmbiguousRelations detects relations within a model that cannot be
// told apart: two non-self relation fields sharing a target and relation
// name, or a self-relation whose group of same-named fields is ambiguous
// in size or emptiness. Returns at the first violation per model.
func ruleR6AmbiguousRelations(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		rels := model.RelationFields()

		type group struct {
			name    string
			members []*dmir.RelationField
		}
		var selfGroups []group
		index := make(map[string]int)
		for _, f := range rels {
			if f.RelationInfo.To != model.Name {
				continue
			}
			if i, ok := index[f.RelationInfo.Name]; ok {
				selfGroups[i].members = append(selfGroups[i].members, f)
				continue
			}
			index[f.RelationInfo.Name] = len(selfGroups)
			selfGroups = append(selfGroups, group{name: f.RelationInfo.Name, members: []*dmir.RelationField{f}})
		}

		emitted := false
		for _, g := range selfGroups {
			if emitted {
				break
			}
			if len(g.members) < 3 {
				continue
			}
			names := make([]string, 0, 3)
			for _, m := range g.members[:3] {
				names = append(names, m.Name)
			}
			var msg string
			if g.name == "" {
				msg = fmt.Sprintf("Unnamed self relation detected. The fields `%s` in model `%s` have no relation name. Please provide a relation name for one of them by adding `@relation(<name>)`.",
					strings.Join(names, "`, `"), model.Name)
			} else {
				msg = fmt.Sprintf("Wrongly named self relation detected. The fields `%s` in model `%s` have the same relation name. At most two relation fields can belong to the same relation.",
					strings.Join(names, "`, `"), model.Name)
			}
			rc.push(model.Name, diagnostics.NewModelValidationError(msg, model.Name, rc.modelSpan(model.Name)))
			emitted = true
		}
		if emitted {
			continue
		}

	pairs:
		for i := 0; i < len(rels) && !emitted; i++ {
			a := rels[i]
			for j := i + 1; j < len(rels); j++ {
				b := rels[j]
				if a.RelationInfo.To == b.RelationInfo.To && a.RelationInfo.To != model.Name && a.RelationInfo.Name == b.RelationInfo.Name {
					var msg string
					if a.RelationInfo.Name == "" {
						msg = fmt.Sprintf("Ambiguous relation detected. The fields `%s` and `%s` in model `%s` both refer to model `%s`. Please provide different relation names for them by adding `@relation(<name>)`.",
							a.Name, b.Name, model.Name, a.RelationInfo.To)
					} else {
						msg = fmt.Sprintf("Wrongly named relation detected. The relation fields `%s` and `%s` in model `%s` have the same relation name. Please provide different relation names for them through `@relation(<name>)`.",
							a.Name, b.Name, model.Name)
					}
					rc.push(model.Name, diagnostics.NewModelValidationError(msg, model.Name, rc.modelSpan(model.Name)))
					emitted = true
					break pairs
				}
			}
		}
		if emitted {
			continue
		}

		for _, g := range selfGroups {
			if len(g.members) == 2 && g.name == "" {
				msg := fmt.Sprintf("Ambiguous self relation detected. The fields `%s` and `%s` in model `%s` both refer to `%s`. If they are different relations, please provide different relation names for them through `@relation(<name>)`.",
					g.members[0].Name, g.members[1].Name, model.Name, model.Name)
				rc.push(model.Name, diagnostics.NewModelValidationError(msg, model.Name, rc.modelSpan(model.Name)))
				break
			}
		}
	}
}

// ruleR7ScalarListSupport flags list-arity scalar fields on connectors that
// cannot store them.
func ruleR7ScalarListSupport(rc *ruleContext) {
	if rc.Caps == nil || rc.Caps.SupportsScalarLists() {
		return
	}
	for _, model := range rc.Dm.Models() {
		for _, f := range model.ScalarFields() {
			if f.Arity.IsList() {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("Field `%s` in model `%s` can't be a list. The current connector does not support lists of primitive types.", f.Name, model.Name),
					model.Name, f.Name, rc.fieldSpan(model.Name, f.Name)))
			}
		}
	}
}

// ruleR8JSONSupport flags Json-typed scalar fields on connectors without
// JSON support.
func ruleR8JSONSupport(rc *ruleContext) {
	if rc.Caps == nil || rc.Caps.SupportsJSON() {
		return
	}
	for _, model := range rc.Dm.Models() {
		for _, f := range model.ScalarFields() {
			if f.Type.Kind == dmir.KindJson {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("Field `%s` in model `%s` can't be of type Json. The current connector does not support the Json type.", f.Name, model.Name),
					model.Name, f.Name, rc.fieldSpan(model.Name, f.Name)))
			}
		}
	}
}

// ruleR9ConnectorValidation delegates to the connector's own structural
// validators, wrapping whatever it returns with the field's or model's span.
func ruleR9ConnectorValidation(rc *ruleContext) {
	if rc.Conn == nil {
		return
	}
	for _, model := range rc.Dm.Models() {
		for _, f := range model.ScalarFields() {
			if err := rc.Conn.ValidateField(f); err != nil {
				rc.push(model.Name, diagnostics.NewConnectorError(err.Error(), rc.fieldSpan(model.Name, f.Name)))
			}
		}
		if err := rc.Conn.ValidateModel(model); err != nil {
			rc.push(model.Name, diagnostics.NewConnectorError(err.Error(), rc.modelSpan(model.Name)))
		}
	}
}

// ruleR10EnumDefaults checks that an enum-typed field's enum-literal
// default names a value the enum actually declares. Other default/type
// combinations are accepted without comment (spec.md §9 open question).
func ruleR10EnumDefaults(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, f := range model.ScalarFields() {
			if f.Type.Kind != dmir.KindEnum || f.Default.Kind != dmir.DefaultEnumValue {
				continue
			}
			enum, ok := rc.Dm.FindEnum(f.Type.EnumName)
			if !ok {
				continue
			}
			found := false
			for _, v := range enum.Values {
				if v == f.Default.EnumValue {
					found = true
					break
				}
			}
			if !found {
				rc.push(model.Name, diagnostics.NewAttributeValidationError(
					fmt.Sprintf("The defined default value `%s` is not a valid value of the enum `%s` specified for the field `%s`.", f.Default.EnumValue, enum.Name, f.Name),
					"default", rc.attributeSpan(model.Name, f.Name, "default")))
			}
		}
	}
}

// ruleR22DefaultValueTypeMatch requires a scalar field's literal default to
// match its own declared scalar type.
func ruleR22DefaultValueTypeMatch(rc *ruleContext) {
	literalKind := func(d dmir.Default) (dmir.ScalarTypeKind, bool) {
		switch d.Kind {
		case dmir.DefaultLiteralBool:
			return dmir.KindBoolean, true
		case dmir.DefaultLiteralInt:
			return dmir.KindInt, true
		case dmir.DefaultLiteralFloat:
			return dmir.KindFloat, true
		case dmir.DefaultLiteralString:
			return dmir.KindString, true
		default:
			return 0, false
		}
	}
	for _, model := range rc.Dm.Models() {
		for _, f := range model.ScalarFields() {
			kind, ok := literalKind(f.Default)
			if !ok {
				continue
			}
			// Int literals are accepted for BigInt, Float and Decimal
			// fields, and Float literals for Decimal fields, mirroring the
			// connector's own numeric widening.
			if kind == f.Type.Kind {
				continue
			}
			if kind == dmir.KindInt && (f.Type.Kind == dmir.KindBigInt || f.Type.Kind == dmir.KindFloat || f.Type.Kind == dmir.KindDecimal) {
				continue
			}
			if kind == dmir.KindFloat && f.Type.Kind == dmir.KindDecimal {
				continue
			}
			rc.push(model.Name, diagnostics.NewAttributeValidationError(
				fmt.Sprintf("The default value for field `%s` in model `%s` does not match its type.", f.Name, model.Name),
				"default", rc.attributeSpan(model.Name, f.Name, "default")))
		}
	}
}

// ruleR11AutoIncrement enforces connector limits on autoincrement() usage.
func ruleR11AutoIncrement(rc *ruleContext) {
	if rc.Caps == nil {
		return
	}
	for _, model := range rc.Dm.Models() {
		autos := model.AutoIncrementFields()
		if len(autos) > 1 && !rc.Caps.SupportsMultipleAutoIncrement() {
			rc.push(model.Name, diagnostics.NewModelValidationError(
				fmt.Sprintf("The model `%s` has multiple fields with `@default(autoincrement())`. The current connector only supports one autoincrement field per model.", model.Name),
				model.Name, rc.modelSpan(model.Name)))
		}
		for _, f := range autos {
			if !f.IsID && !rc.Caps.SupportsNonIDAutoIncrement() {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("Field `%s` in model `%s` uses `@default(autoincrement())`, which is not allowed on non-id fields by the current connector.", f.Name, model.Name),
					model.Name, f.Name, rc.attributeSpan(model.Name, f.Name, "default")))
				continue
			}
			if !model.FieldIsIndexed(f.Name) && !rc.Caps.SupportsNonIndexedAutoIncrement() {
				rc.push(model.Name, diagnostics.NewFieldValidationError(
					fmt.Sprintf("Field `%s` in model `%s` uses `@default(autoincrement())` but is not part of any index or the model's id. The current connector requires autoincrement fields to be indexed.", f.Name, model.Name),
					model.Name, f.Name, rc.attributeSpan(model.Name, f.Name, "default")))
			}
		}
	}
}

// ruleR23ShardKeyFields requires a model's @@shardKey([...]) to name
// existing scalar fields, when the connector advertises shard-key support.
func ruleR23ShardKeyFields(rc *ruleContext) {
	type shardKeyCapable interface{ SupportsShardKeys() bool }
	caps, ok := rc.Caps.(shardKeyCapable)
	if !ok || !caps.SupportsShardKeys() {
		return
	}
	for _, model := range rc.Dm.Models() {
		attr, ok := ast.FindAttribute(rc.astModel(model.Name).Attributes, "@@shardKey")
		if !ok {
			continue
		}
		var missing []string
		for _, name := range shardKeyFieldNames(attr.Args) {
			if _, _, found := model.FindField(name); !found {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			rc.push(model.Name, diagnostics.NewModelValidationError(
				fmt.Sprintf("The argument to `@@shardKey` must refer only to existing fields in the model `%s`. The following fields do not exist: %s", model.Name, strings.Join(missing, ", ")),
				model.Name, attr.Span))
		}
	}
}

// shardKeyFieldNames extracts the bare identifier list inside the first
// `[...]` in a `@@shardKey([...])` attribute's raw argument text, the same
// bracket-scanning technique package elaborate uses for `@@id`/`@@unique`.
func shardKeyFieldNames(args string) []string {
	start := strings.IndexByte(args, '[')
	end := strings.IndexByte(args, ']')
	if start < 0 || end < 0 || end < start {
		return nil
	}
	var out []string
	for _, p := range strings.Split(args[start+1:end], ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ruleR12RelationBaseFields validates each relation field's `fields` list
// against its own model's scalar fields.
func ruleR12RelationBaseFields(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			info := rel.RelationInfo
			if len(info.Fields) == 0 {
				// spec.md §9: an empty fields list disables the
				// "all underlying optional" check below; preserved
				// intentionally, not a bug.
				continue
			}

			var missing, nonScalar []string
			var scalars []*dmir.ScalarField
			for _, name := range info.Fields {
				sf, relf, ok := model.FindField(name)
				if !ok {
					missing = append(missing, name)
					continue
				}
				if relf != nil {
					nonScalar = append(nonScalar, name)
					continue
				}
				scalars = append(scalars, sf)
			}

			if len(missing) > 0 {
				rc.push(model.Name, diagnostics.NewValidationError(
					fmt.Sprintf("The argument fields must refer only to existing fields. The following fields do not exist in this model: %s", strings.Join(missing, ", ")),
					rc.fieldSpan(model.Name, rel.Name)))
				continue
			}
			if len(nonScalar) > 0 {
				rc.push(model.Name, diagnostics.NewValidationError(
					fmt.Sprintf("The argument fields must refer only to scalar fields. The following fields are not scalar: %s", strings.Join(nonScalar, ", ")),
					rc.fieldSpan(model.Name, rel.Name)))
				continue
			}

			if rel.Arity.IsRequired() {
				anyOptional, allOptional := false, true
				for _, sf := range scalars {
					if sf.Arity.IsOptional() {
						anyOptional = true
					} else {
						allOptional = false
					}
				}
				names := make([]string, len(scalars))
				for i, sf := range scalars {
					names[i] = sf.Name
				}
				if allOptional {
					rc.push(model.Name, diagnostics.NewValidationError(
						fmt.Sprintf("The relation field `%s` uses the scalar fields %s. All those fields are optional. Hence the relation field must be optional as well.", rel.Name, strings.Join(names, ", ")),
						rc.fieldSpan(model.Name, rel.Name)))
				} else if anyOptional {
					rc.push(model.Name, diagnostics.NewValidationError(
						fmt.Sprintf("The relation field `%s` uses the scalar fields %s. At least one of those fields is optional. Hence the relation field must be optional as well.", rel.Name, strings.Join(names, ", ")),
						rc.fieldSpan(model.Name, rel.Name)))
				}
			}
		}
	}
}

// ruleR13RelationReferencedFields validates each relation field's
// `references` list against the related model, including type
// compatibility and unique-criterion matching, plus the many-to-many
// singular-id restriction (R13m).
func ruleR13RelationReferencedFields(rc *ruleContext) {
	for _, model := range rc.Dm.Models() {
		for _, rel := range model.RelationFields() {
			info := rel.RelationInfo
			if len(info.References) == 0 {
				continue
			}
			related, ok := rc.Dm.FindModel(info.To)
			if !ok {
				diagnostics.Raise("find_model(" + info.To + ") failed resolving relation `" + rel.Name + "` on model `" + model.Name + "`")
			}

			var missing, nonScalar []string
			var refScalars []*dmir.ScalarField
			for _, name := range info.References {
				sf, relf, ok := related.FindField(name)
				if !ok {
					missing = append(missing, name)
					continue
				}
				if relf != nil {
					nonScalar = append(nonScalar, name)
					continue
				}
				refScalars = append(refScalars, sf)
			}

			if len(missing) > 0 {
				rc.push(model.Name, diagnostics.NewValidationError(
					fmt.Sprintf("The argument `references` must refer only to existing fields in the related model `%s`. The following fields do not exist in the related model: %s", related.Name, strings.Join(missing, ", ")),
					rc.relationAttributeSpan(model.Name, rel.Name)))
				continue
			}
			if len(nonScalar) > 0 {
				rc.push(model.Name, diagnostics.NewValidationError(
					fmt.Sprintf("The argument `references` must refer only to scalar fields in the related model `%s`. The following fields are not scalar: %s", related.Name, strings.Join(nonScalar, ", ")),
					rc.relationAttributeSpan(model.Name, rel.Name)))
				continue
			}

			if !rc.hasErrors(model.Name) && len(info.Fields) == len(info.References) {
				baseScalars := make([]*dmir.ScalarField, 0, len(info.Fields))
				ok := true
				for _, name := range info.Fields {
					sf, relf, found := model.FindField(name)
					if !found || relf != nil {
						ok = false
						break
					}
					baseScalars = append(baseScalars, sf)
				}
				if ok {
					for i := range baseScalars {
						if !typesCompatible(rc, baseScalars[i], refScalars[i]) {
							rc.push(model.Name, diagnostics.NewAttributeValidationError(
								fmt.Sprintf("The type of the field `%s` in the model `%s` is not matching the type of the referenced field `%s` in model `%s`.",
									baseScalars[i].Name, model.Name, refScalars[i].Name, related.Name),
								diagnostics.RelationAttributeName,
								rc.relationAttributeSpan(model.Name, rel.Name)))
						}
					}
				}
			}

			if !rc.hasErrors(model.Name) {
				refNames := info.References
				matchesLoose := false
				for _, c := range related.LooseUniqueCriterias() {
					if dmir.SortedEqual(c.Fields, refNames) {
						matchesLoose = true
						break
					}
				}
				if !matchesLoose && (rc.Caps == nil || !rc.Caps.SupportsRelationsOverNonUniqueCriteria()) {
					rc.push(model.Name, diagnostics.NewAttributeValidationError(
						fmt.Sprintf("The argument `references` must refer to a unique criteria in the related model `%s`. Consider adding an `@unique` attribute to the field(s) %s in the related model.", related.Name, strings.Join(refNames, ", ")),
						diagnostics.RelationAttributeName,
						rc.relationAttributeSpan(model.Name, rel.Name)))
				} else if matchesLoose && len(refNames) > 1 && (rc.Caps == nil || !rc.Caps.AllowsRelationFieldsInArbitraryOrder()) {
					exact := false
					for _, c := range related.LooseUniqueCriterias() {
						if dmir.ExactlyEqual(c.Fields, refNames) {
							exact = true
							break
						}
					}
					if !exact {
						rc.push(model.Name, diagnostics.NewAttributeValidationError(
							fmt.Sprintf("The argument `references` must refer to a unique criteria in the related model `%s` using the same order of fields.", related.Name),
							diagnostics.RelationAttributeName,
							rc.relationAttributeSpan(model.Name, rel.Name)))
					}
				}
			}

			if relatedModel, opposite, found := rc.Dm.FindRelatedField(model.Name, rel); found && rel.Arity.IsList() && opposite.Arity.IsList() {
				if len(related.SingularIDFields()) == 1 {
					id := related.SingularIDFields()[0]
					if !(len(info.References) == 1 && info.References[0] == id.Name) {
						rc.push(model.Name, diagnostics.NewAttributeValidationError(
							fmt.Sprintf("Many to many relations must always reference the id field of the related model. Please change the argument `references` to use the id field of the model `%s`.", related.Name),
							diagnostics.RelationAttributeName,
							rc.relationAttributeSpan(model.Name, rel.Name)))
					}
				}
				_ = relatedModel
			}

			if len(info.Fields) != 0 && len(info.References) != 0 && len(info.Fields) != len(info.References) {
				rc.push(model.Name, diagnostics.NewValidationError(
					"You must specify the same number of fields in `fields` and `references`.",
					rc.relationAttributeSpan(model.Name, rel.Name)))
			}
		}
	}
}

// typesCompatible compares a relation's base and referenced scalar, falling
// back to native-type comparison when the reduced scalar kinds alone
// cannot decide (spec.md §4.3 R13).
func typesCompatible(rc *ruleContext, base, ref *dmir.ScalarField) bool {
	if base.Type.IsCompatibleWith(ref.Type) {
		return true
	}
	if rc.Conn == nil {
		return false
	}
	baseNative := base.NativeType
	if baseNative == nil {
		baseNative = rc.Conn.DefaultNativeTypeForScalarType(base.Type.Kind)
	}
	refNative := ref.NativeType
	if refNative == nil {
		refNative = rc.Conn.DefaultNativeTypeForScalarType(ref.Type.Kind)
	}
	if baseNative == nil || refNative == nil {
		return false
	}
	return baseNative.Name == refNative.Name
}
