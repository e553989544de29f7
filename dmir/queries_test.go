package dmir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalint/validate/dmir"
)

func buildModel() *dmir.Model {
	m := &dmir.Model{Name: "User"}
	m.ScalarFields_ = []*dmir.ScalarField{
		{Name: "id", Arity: dmir.Required, IsID: true, Type: dmir.FieldType{Kind: dmir.KindInt}},
		{Name: "email", Arity: dmir.Required, IsUnique: true, Type: dmir.FieldType{Kind: dmir.KindString}},
		{Name: "nickname", Arity: dmir.Optional, IsUnique: true, Type: dmir.FieldType{Kind: dmir.KindString}},
	}
	return m
}

func TestLooseAndStrictUniqueCriterias(t *testing.T) {
	m := buildModel()
	loose := m.LooseUniqueCriterias()
	assert.Len(t, loose, 3) // id, email, nickname

	strict := m.StrictUniqueCriteriasDisregardingUnsupported()
	assert.Len(t, strict, 2) // id and email qualify; nickname is optional
}

func TestFindRelatedFieldIsSymmetric(t *testing.T) {
	user := &dmir.Model{Name: "User"}
	post := &dmir.Model{Name: "Post"}
	userPosts := &dmir.RelationField{Name: "posts", Arity: dmir.List, RelationInfo: dmir.RelationInfo{To: "Post"}}
	postUser := &dmir.RelationField{Name: "user", Arity: dmir.Required, RelationInfo: dmir.RelationInfo{To: "User"}}
	user.RelationFields_ = []*dmir.RelationField{userPosts}
	post.RelationFields_ = []*dmir.RelationField{postUser}

	dm := &dmir.Datamodel{Models_: []*dmir.Model{user, post}}

	_, found, ok := dm.FindRelatedField("User", userPosts)
	assert.True(t, ok)
	assert.Same(t, postUser, found)

	_, found2, ok2 := dm.FindRelatedField("Post", postUser)
	assert.True(t, ok2)
	assert.Same(t, userPosts, found2)
}

func TestSortedEqualAndExactlyEqual(t *testing.T) {
	assert.True(t, dmir.SortedEqual([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, dmir.ExactlyEqual([]string{"a", "b"}, []string{"b", "a"}))
	assert.True(t, dmir.ExactlyEqual([]string{"a", "b"}, []string{"a", "b"}))
}
