package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/diagnostics"
	"github.com/schemalint/validate/dmir"
	"github.com/schemalint/validate/validate"
)

func astModel(name string, fieldSpans map[string]diagnostics.Span, fullSpan diagnostics.Span) ast.Model {
	m := ast.Model{Name: name, Span: fullSpan}
	for fname, span := range fieldSpans {
		m.Fields = append(m.Fields, ast.Field{Name: fname, Span: span, Attributes: []ast.Attribute{
			{Name: diagnostics.RelationAttributeName, Span: span},
			{Name: "id", Span: span},
		}})
	}
	return m
}

func requiredID(name string) *dmir.ScalarField {
	return &dmir.ScalarField{Name: name, Arity: dmir.Required, IsID: true, Type: dmir.FieldType{Kind: dmir.KindInt}}
}

// buildHappyPath constructs the scenario-1 fixture: User.posts Post[] and
// Post.user User @relation(fields:[userId], references:[id]).
func buildHappyPath() (*ast.SchemaAst, *dmir.Datamodel) {
	userSpan := diagnostics.NewSpan(0, 50, 0)
	postSpan := diagnostics.NewSpan(50, 120, 0)
	userFieldSpan := diagnostics.NewSpan(60, 70, 0)

	a := &ast.SchemaAst{Models: []ast.Model{
		{Name: "User", Span: userSpan, Fields: []ast.Field{{Name: "id", Span: userSpan}, {Name: "posts", Span: userSpan}}},
		{Name: "Post", Span: postSpan, Fields: []ast.Field{
			{Name: "id", Span: postSpan},
			{Name: "userId", Span: postSpan},
			{Name: "user", Span: userFieldSpan, Attributes: []ast.Attribute{{Name: diagnostics.RelationAttributeName, Span: userFieldSpan}}},
		}},
	}}

	user := &dmir.Model{Name: "User", Span: userSpan}
	user.ScalarFields_ = []*dmir.ScalarField{requiredID("id")}
	userID := &dmir.RelationField{Name: "posts", Arity: dmir.List, RelationInfo: dmir.RelationInfo{To: "Post"}}
	user.RelationFields_ = []*dmir.RelationField{userID}

	post := &dmir.Model{Name: "Post", Span: postSpan}
	post.ScalarFields_ = []*dmir.ScalarField{
		requiredID("id"),
		{Name: "userId", Arity: dmir.Required, Type: dmir.FieldType{Kind: dmir.KindInt}},
	}
	postUser := &dmir.RelationField{
		Name: "user", Span: userFieldSpan, Arity: dmir.Required,
		RelationInfo: dmir.RelationInfo{To: "User", Fields: []string{"userId"}, References: []string{"id"}},
	}
	post.RelationFields_ = []*dmir.RelationField{postUser}

	dm := &dmir.Datamodel{Models_: []*dmir.Model{user, post}}
	return a, dm
}

func TestHappyPathOneToMany(t *testing.T) {
	a, dm := buildHappyPath()
	err := validate.Validate(a, dm)
	assert.NoError(t, err)
}

func TestMissingBaseField(t *testing.T) {
	a, dm := buildHappyPath()
	post := dm.Models_[1]
	post.ScalarFields_ = post.ScalarFields_[:1] // drop userId
	post.RelationFields_[0].RelationInfo.Fields = []string{"userId"}

	err := validate.Validate(a, dm)
	require.Error(t, err)
	bag, ok := err.(*diagnostics.Bag)
	require.True(t, ok)
	require.Len(t, bag.Errors(), 1)
	assert.Equal(t, "The argument fields must refer only to existing fields. The following fields do not exist in this model: userId", bag.Errors()[0].Message)
	assert.Equal(t, post.RelationFields_[0].Span, bag.Errors()[0].Span)
}

func TestRequiredRelationWithOptionalBase(t *testing.T) {
	userSpan := diagnostics.NewSpan(0, 50, 0)
	postSpan := diagnostics.NewSpan(50, 160, 0)
	relSpan := diagnostics.NewSpan(100, 150, 0)

	a := &ast.SchemaAst{Models: []ast.Model{
		{Name: "User", Span: userSpan, Fields: []ast.Field{{Name: "id", Span: userSpan}, {Name: "firstName", Span: userSpan}, {Name: "lastName", Span: userSpan}}},
		{Name: "Post", Span: postSpan, Fields: []ast.Field{
			{Name: "id", Span: postSpan},
			{Name: "userFirstName", Span: postSpan},
			{Name: "userLastName", Span: postSpan},
			{Name: "user", Span: relSpan, Attributes: []ast.Attribute{{Name: diagnostics.RelationAttributeName, Span: relSpan}}},
		}},
	}}

	user := &dmir.Model{Name: "User", Span: userSpan, ScalarFields_: []*dmir.ScalarField{
		requiredID("id"),
		{Name: "firstName", Arity: dmir.Required, Type: dmir.FieldType{Kind: dmir.KindString}},
		{Name: "lastName", Arity: dmir.Required, Type: dmir.FieldType{Kind: dmir.KindString}},
	}, Indexes: []dmir.Index{{Fields: []string{"firstName", "lastName"}, IsUnique: true}}}
	post := &dmir.Model{Name: "Post", Span: postSpan}
	post.ScalarFields_ = []*dmir.ScalarField{
		requiredID("id"),
		{Name: "userFirstName", Arity: dmir.Required, Type: dmir.FieldType{Kind: dmir.KindString}},
		{Name: "userLastName", Arity: dmir.Optional, Type: dmir.FieldType{Kind: dmir.KindString}},
	}
	post.RelationFields_ = []*dmir.RelationField{{
		Name: "user", Span: relSpan, Arity: dmir.Required,
		RelationInfo: dmir.RelationInfo{To: "User", Fields: []string{"userFirstName", "userLastName"}, References: []string{"firstName", "lastName"}},
	}}
	dm := &dmir.Datamodel{Models_: []*dmir.Model{user, post}}

	err := validate.Validate(a, dm)
	require.Error(t, err)
	bag := err.(*diagnostics.Bag)
	require.Len(t, bag.Errors(), 1)
	assert.Equal(t,
		"The relation field `user` uses the scalar fields userFirstName, userLastName. At least one of those fields is optional. Hence the relation field must be optional as well.",
		bag.Errors()[0].Message)
}

func TestTypeMismatch(t *testing.T) {
	a, dm := buildHappyPath()
	post := dm.Models_[1]
	post.ScalarFields_[1].Type = dmir.FieldType{Kind: dmir.KindString} // userId String

	err := validate.Validate(a, dm)
	require.Error(t, err)
	bag := err.(*diagnostics.Bag)
	var found bool
	for _, d := range bag.Errors() {
		if d.Message == "The type of the field `userId` in the model `Post` is not matching the type of the referenced field `id` in model `User`." {
			found = true
			assert.Equal(t, diagnostics.RelationAttributeName, d.AttributeName)
		}
	}
	assert.True(t, found, "expected type-mismatch diagnostic, got %+v", bag.Errors())
}

func TestManyToManyMustReferenceID(t *testing.T) {
	categorySpan := diagnostics.NewSpan(0, 50, 0)
	productSpan := diagnostics.NewSpan(50, 150, 0)
	relSpan := diagnostics.NewSpan(100, 140, 0)

	a := &ast.SchemaAst{Models: []ast.Model{
		{Name: "Category", Span: categorySpan, Fields: []ast.Field{{Name: "id", Span: categorySpan}, {Name: "slug", Span: categorySpan}}},
		{Name: "Product", Span: productSpan, Fields: []ast.Field{
			{Name: "id", Span: productSpan},
			{Name: "categories", Span: relSpan, Attributes: []ast.Attribute{{Name: diagnostics.RelationAttributeName, Span: relSpan}}},
		}},
	}}

	category := &dmir.Model{Name: "Category", Span: categorySpan}
	category.ScalarFields_ = []*dmir.ScalarField{
		requiredID("id"),
		{Name: "slug", Arity: dmir.Required, IsUnique: true, Type: dmir.FieldType{Kind: dmir.KindString}},
	}
	categoryBack := &dmir.RelationField{Name: "products", Arity: dmir.List, RelationInfo: dmir.RelationInfo{To: "Product"}}
	category.RelationFields_ = []*dmir.RelationField{categoryBack}

	product := &dmir.Model{Name: "Product", Span: productSpan, ScalarFields_: []*dmir.ScalarField{requiredID("id")}}
	productRel := &dmir.RelationField{
		Name: "categories", Span: relSpan, Arity: dmir.List,
		RelationInfo: dmir.RelationInfo{To: "Category", References: []string{"slug"}},
	}
	product.RelationFields_ = []*dmir.RelationField{productRel}

	dm := &dmir.Datamodel{Models_: []*dmir.Model{category, product}}

	err := validate.Validate(a, dm)
	require.Error(t, err)
	bag := err.(*diagnostics.Bag)
	var found bool
	for _, d := range bag.Errors() {
		if d.Message == "Many to many relations must always reference the id field of the related model. Please change the argument `references` to use the id field of the model `Category`." {
			found = true
		}
	}
	assert.True(t, found, "expected many-to-many id diagnostic, got %+v", bag.Errors())
}

func TestOneToOneArgumentsOnBothSides(t *testing.T) {
	aSpan := diagnostics.NewSpan(0, 50, 0)
	bSpan := diagnostics.NewSpan(50, 100, 0)
	relASpan := diagnostics.NewSpan(10, 20, 0)
	relBSpan := diagnostics.NewSpan(60, 70, 0)

	ast1 := &ast.SchemaAst{Models: []ast.Model{
		{Name: "A", Span: aSpan, Fields: []ast.Field{{Name: "id", Span: aSpan}, {Name: "b", Span: relASpan}}},
		{Name: "B", Span: bSpan, Fields: []ast.Field{{Name: "id", Span: bSpan}, {Name: "a", Span: relBSpan}}},
	}}

	modelA := &dmir.Model{Name: "A", Span: aSpan, ScalarFields_: []*dmir.ScalarField{requiredID("id")}}
	modelB := &dmir.Model{Name: "B", Span: bSpan, ScalarFields_: []*dmir.ScalarField{requiredID("id")}}

	relA := &dmir.RelationField{
		Name: "b", Span: relASpan, Arity: dmir.Optional,
		RelationInfo: dmir.RelationInfo{To: "B", Fields: []string{"id"}, References: []string{"id"}},
	}
	relB := &dmir.RelationField{
		Name: "a", Span: relBSpan, Arity: dmir.Optional,
		RelationInfo: dmir.RelationInfo{To: "A", Fields: []string{"id"}, References: []string{"id"}},
	}
	modelA.RelationFields_ = []*dmir.RelationField{relA}
	modelB.RelationFields_ = []*dmir.RelationField{relB}

	dm := &dmir.Datamodel{Models_: []*dmir.Model{modelA, modelB}}

	err := validate.PostStandardisationValidate(ast1, dm)
	require.Error(t, err)
	bag := err.(*diagnostics.Bag)
	require.Len(t, bag.Errors(), 4)

	// Side-major: model A's relation field is judged fully (references,
	// then fields) before model B's own field is visited on its own turn
	// through the outer loop.
	want := []string{
		"The relation fields `b` on Model `A` and `a` on Model `B` both provide the `references` argument in the @relation attribute. You have to provide it only on one of the two fields.",
		"The relation fields `b` on Model `A` and `a` on Model `B` both provide the `fields` argument in the @relation attribute. You have to provide it only on one of the two fields.",
		"The relation fields `a` on Model `B` and `b` on Model `A` both provide the `references` argument in the @relation attribute. You have to provide it only on one of the two fields.",
		"The relation fields `a` on Model `B` and `b` on Model `A` both provide the `fields` argument in the @relation attribute. You have to provide it only on one of the two fields.",
	}
	got := make([]string, len(bag.Errors()))
	for i, d := range bag.Errors() {
		got[i] = d.Message
	}
	assert.Equal(t, want, got)
}
