package connector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalint/validate/connector"
	"github.com/schemalint/validate/dmir"
)

func TestByProviderResolvesAliases(t *testing.T) {
	pg, ok := connector.ByProvider("postgres")
	require.True(t, ok)
	assert.Same(t, connector.Postgres, pg)

	_, ok = connector.ByProvider("oracle")
	assert.False(t, ok)
}

func TestCapabilityFlagsDifferPerProvider(t *testing.T) {
	assert.True(t, connector.Postgres.Capabilities.SupportsScalarLists())
	assert.False(t, connector.MySQL.Capabilities.SupportsScalarLists())

	assert.False(t, connector.Postgres.Capabilities.SupportsShardKeys())
	assert.True(t, connector.CockroachDB.Capabilities.SupportsShardKeys())
}

func TestMySQLValidateFieldRejectsUnlengthedVarChar(t *testing.T) {
	err := connector.MySQL.ValidateField(&dmir.ScalarField{
		Name:       "name",
		NativeType: &dmir.NativeType{Name: "VarChar"},
	})
	require.Error(t, err)

	err = connector.MySQL.ValidateField(&dmir.ScalarField{
		Name:       "name",
		NativeType: &dmir.NativeType{Name: "VarChar", Args: []string{"191"}},
	})
	assert.NoError(t, err)
}

func TestMeetsMinimumVersion(t *testing.T) {
	ok, err := connector.Postgres.MeetsMinimumVersion("14.2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = connector.Postgres.MeetsMinimumVersion("9.5")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = connector.Postgres.MeetsMinimumVersion("not-a-version")
	assert.Error(t, err)
}

func TestDefaultNativeTypeForScalarType(t *testing.T) {
	nt := connector.Postgres.DefaultNativeTypeForScalarType(dmir.KindString)
	require.NotNil(t, nt)
	assert.Equal(t, "Text", nt.Name)

	assert.Nil(t, connector.SQLite.DefaultNativeTypeForScalarType(dmir.KindString))
}
