package validate

import (
	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/diagnostics"
	"github.com/schemalint/validate/dmir"
)

// Validate runs the pre-standardisation pass: every rule in pass1Rules,
// in order, over the raw datamodel. When errors were produced it returns
// the bag, with any warnings alongside them (type-assert the error to
// *diagnostics.Bag to reach them); when no errors were produced it returns
// nil and any warnings are dropped.
//
// A caller-invariant breach (a lookup standardisation was supposed to
// guarantee) panics with diagnostics.StateError instead of returning a
// diagnostic; Validate recovers it and returns it as an error so the
// panic never escapes this package, while still making the failure loud
// and distinct from an ordinary validation result.
func Validate(a *ast.SchemaAst, dm *dmir.Datamodel) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(diagnostics.StateError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	rc := newRuleContext(a, dm)
	for _, rule := range pass1Rules {
		rule(rc)
	}
	return rc.Outer.ToResult()
}

// PostStandardisationValidate runs the post-standardisation pass: every
// rule in pass2Rules, in order, over the elaborated datamodel (back-relation
// fields must already be filled in). Same panic/recover contract as Validate.
func PostStandardisationValidate(a *ast.SchemaAst, dm *dmir.Datamodel) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(diagnostics.StateError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	rc := newRuleContext(a, dm)
	for _, rule := range pass2Rules {
		rule(rc)
	}
	return rc.Outer.ToResult()
}
