// Package standardize is the external collaborator spec.md §2 describes as
// running between the two validation passes: it elaborates a raw datamodel
// by inferring the back-relation field for every relation field that does
// not yet have one, synthesizing a minimal field on the related model so
// the post-standardisation pass can reason about both sides of a relation.
//
// This mirrors the teacher's database/infer_relations.go in spirit: a best
// effort, additive pass that never removes or renames anything the author
// wrote, and never fails — any relation it cannot confidently pair is left
// alone for rule R14 (opposite-field presence) to report.
package standardize

import (
	"strings"

	"github.com/schemalint/validate/dmir"
)

// Standardise walks every model's relation fields and, for any that lack a
// matching field on the target model, appends a synthesized back-relation
// field there. It mutates dm in place, per spec.md §3's note that the DMIR
// is passed mutable between passes specifically to allow this.
func Standardise(dm *dmir.Datamodel) {
	for _, model := range dm.Models() {
		for _, rel := range model.RelationFields() {
			if _, _, found := dm.FindRelatedField(model.Name, rel); found {
				continue
			}
			related, ok := dm.FindModel(rel.RelationInfo.To)
			if !ok {
				continue
			}
			related.RelationFields_ = append(related.RelationFields_, &dmir.RelationField{
				Name:  backRelationFieldName(model.Name, rel),
				Arity: backRelationArity(rel),
				RelationInfo: dmir.RelationInfo{
					To:   model.Name,
					Name: rel.RelationInfo.Name,
				},
			})
		}
	}
}

// backRelationFieldName lower-cases the owning model's name as the
// synthesized field name, pluralizing it when the inferred arity is a
// list — the same heuristic `prisma format` uses when it writes a missing
// opposite field back into the source.
func backRelationFieldName(owningModelName string, rel *dmir.RelationField) string {
	name := strings.ToLower(owningModelName[:1]) + owningModelName[1:]
	if backRelationArity(rel).IsList() {
		return name + "s"
	}
	return name
}

// backRelationArity infers the opposite field's arity: the owning side of
// a relation that carries `fields`/`references` is the "to-one" side, so
// its opposite is a list; otherwise default to a required singular field,
// which rule R16/R18 will correct or flag as needed.
func backRelationArity(rel *dmir.RelationField) dmir.Arity {
	if len(rel.RelationInfo.Fields) > 0 || len(rel.RelationInfo.References) > 0 {
		return dmir.List
	}
	return dmir.Required
}
