// Package validate is the rule engine: an ordered, fixed list of
// independent pure functions (context) -> diagnostics, organised into the
// two passes spec.md §4.2 describes, plus the façade that runs them.
package validate

import (
	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/connector"
	"github.com/schemalint/validate/diagnostics"
	"github.com/schemalint/validate/dmir"
)

// ruleContext is threaded through every rule function in a pass. It owns
// the outer bag plus one local bag per model, so a rule can ask "did an
// earlier rule, this pass, already flag this model" without consulting
// diagnostics that belong to other models or to enums.
type ruleContext struct {
	Ast   *ast.SchemaAst
	Dm    *dmir.Datamodel
	Conn  *connector.Connector
	Caps  dmir.Capabilities

	Outer *diagnostics.Bag
	local map[string]*diagnostics.Bag
}

func newRuleContext(a *ast.SchemaAst, dm *dmir.Datamodel) *ruleContext {
	rc := &ruleContext{
		Ast:   a,
		Dm:    dm,
		Outer: diagnostics.NewBag(),
		local: make(map[string]*diagnostics.Bag),
	}
	if dm.Datasource != nil {
		rc.Caps = dm.Datasource.CombinedConnector
		if c, ok := dm.Datasource.ActiveConnector.(*connector.Connector); ok {
			rc.Conn = c
		}
	}
	return rc
}

func (rc *ruleContext) bagFor(modelName string) *diagnostics.Bag {
	b, ok := rc.local[modelName]
	if !ok {
		b = diagnostics.NewBag()
		rc.local[modelName] = b
	}
	return b
}

// push records a diagnostic both in the model's local bag (for later
// has-prior-errors checks, scoped to that model only, per spec.md §4.6)
// and in the outer bag, in the order rules actually run.
func (rc *ruleContext) push(modelName string, d diagnostics.Diagnostic) {
	rc.bagFor(modelName).Push(d)
	rc.Outer.Push(d)
}

func (rc *ruleContext) hasErrors(modelName string) bool {
	b, ok := rc.local[modelName]
	return ok && b.HasErrors()
}

// astModel looks up a model's AST node. State error: standardisation
// guarantees every dmir model has a matching AST node.
func (rc *ruleContext) astModel(name string) *ast.Model {
	m, ok := rc.Ast.FindModel(name)
	if !ok {
		diagnostics.Raise("find_model(" + name + ") failed while looking up the AST node for a model the datamodel claims exists")
	}
	return m
}

func (rc *ruleContext) astEnum(name string) *ast.Enum {
	e, ok := rc.Ast.FindEnum(name)
	if !ok {
		diagnostics.Raise("find_enum(" + name + ") failed while looking up the AST node for an enum the datamodel claims exists")
	}
	return e
}

// modelSpan, fieldSpan and attributeSpan implement the narrowest-span-wins
// rule from spec.md §9: attribute span > field span > model span.
func (rc *ruleContext) modelSpan(modelName string) diagnostics.Span {
	return rc.astModel(modelName).Span
}

func (rc *ruleContext) fieldSpan(modelName, fieldName string) diagnostics.Span {
	am := rc.astModel(modelName)
	if f, ok := am.FindField(fieldName); ok {
		return f.Span
	}
	return am.Span
}

func (rc *ruleContext) attributeSpan(modelName, fieldName, attrName string) diagnostics.Span {
	am := rc.astModel(modelName)
	if f, ok := am.FindField(fieldName); ok {
		return f.AttributeSpan(attrName)
	}
	return am.Span
}

func (rc *ruleContext) relationAttributeSpan(modelName, fieldName string) diagnostics.Span {
	return rc.attributeSpan(modelName, fieldName, diagnostics.RelationAttributeName)
}
