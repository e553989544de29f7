// Package connector models the capability and structural-validation surface
// of a concrete datasource target, per spec.md §4.3/§4.4/§6. A connector is
// a single value carrying boolean predicates plus two open-ended
// validators and a native-type defaulter — deliberately not a subclass
// hierarchy, so adding a provider never touches the rule engine.
package connector

import (
	"fmt"

	"github.com/hashicorp/go-version"

	"github.com/schemalint/validate/dmir"
)

// Capabilities is the boolean-predicate facet consumed directly by the
// rule engine. Each builtin connector sets its flags in a Capabilities
// literal; a flag left unset is false.
type Capabilities struct {
	MultipleIndexesWithSameName bool
	ScalarLists                 bool
	JSON                        bool
	RelationsOverNonUniqueCriteria bool
	ArbitraryRelationFieldOrder bool
	MultipleAutoIncrement       bool
	NonIDAutoIncrement          bool
	NonIndexedAutoIncrement     bool
	ShardKeys                   bool
}

func (c Capabilities) SupportsMultipleIndexesWithSameName() bool     { return c.MultipleIndexesWithSameName }
func (c Capabilities) SupportsScalarLists() bool                     { return c.ScalarLists }
func (c Capabilities) SupportsJSON() bool                            { return c.JSON }
func (c Capabilities) SupportsRelationsOverNonUniqueCriteria() bool  { return c.RelationsOverNonUniqueCriteria }
func (c Capabilities) AllowsRelationFieldsInArbitraryOrder() bool    { return c.ArbitraryRelationFieldOrder }
func (c Capabilities) SupportsMultipleAutoIncrement() bool           { return c.MultipleAutoIncrement }
func (c Capabilities) SupportsNonIDAutoIncrement() bool              { return c.NonIDAutoIncrement }
func (c Capabilities) SupportsNonIndexedAutoIncrement() bool         { return c.NonIndexedAutoIncrement }
func (c Capabilities) SupportsShardKeys() bool                       { return c.ShardKeys }

var _ dmir.Capabilities = Capabilities{}

// Connector pairs a provider name, its capability set, a minimum supported
// server version, and the two structural validators spec.md §6 describes.
type Connector struct {
	Provider       string
	Capabilities   Capabilities
	MinimumVersion string // e.g. "9.6" for postgres; compared with go-version by MeetsMinimumVersion
	ValidateFieldFn func(*dmir.ScalarField) error
	ValidateModelFn func(*dmir.Model) error
	NativeTypeDefaults map[dmir.ScalarTypeKind]*dmir.NativeType
}

func (c *Connector) ValidateField(field *dmir.ScalarField) error {
	if c.ValidateFieldFn == nil {
		return nil
	}
	return c.ValidateFieldFn(field)
}

func (c *Connector) ValidateModel(model *dmir.Model) error {
	if c.ValidateModelFn == nil {
		return nil
	}
	return c.ValidateModelFn(model)
}

func (c *Connector) DefaultNativeTypeForScalarType(kind dmir.ScalarTypeKind) *dmir.NativeType {
	if c.NativeTypeDefaults == nil {
		return nil
	}
	return c.NativeTypeDefaults[kind]
}

var _ dmir.Connector = (*Connector)(nil)

// MeetsMinimumVersion compares a live server version string (as reported by
// `SELECT version()` or equivalent) against the connector's declared
// minimum, using semantic-version comparison. Neither the validator nor the
// doctor CLI command (which only pings) calls it.
func (c *Connector) MeetsMinimumVersion(serverVersion string) (bool, error) {
	if c.MinimumVersion == "" {
		return true, nil
	}
	have, err := version.NewVersion(serverVersion)
	if err != nil {
		return false, fmt.Errorf("parsing server version %q: %w", serverVersion, err)
	}
	want, err := version.NewVersion(c.MinimumVersion)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", c.MinimumVersion, err)
	}
	return have.GreaterThanOrEqual(want), nil
}
