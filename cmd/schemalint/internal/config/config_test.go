package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/schemalint/validate/cmd/schemalint/internal/config"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	want := config.Config{SchemaPath: "prisma/schema.prisma", Strict: true, NoColor: false}

	out, err := yaml.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, string(out), "schema: prisma/schema.prisma")
	assert.Contains(t, string(out), "strict: true")

	var got config.Config
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, want, got)
}
