package connector

import (
	"fmt"

	"github.com/schemalint/validate/dmir"
)

// Postgres supports JSON, scalar lists, references to non-unique criteria,
// and arbitrary relation-field ordering; it allows several auto-increment
// columns per table, on id or non-id fields, but each must be indexed.
var Postgres = &Connector{
	Provider:       "postgresql",
	MinimumVersion: "9.6",
	Capabilities: Capabilities{
		ScalarLists:                    true,
		JSON:                           true,
		RelationsOverNonUniqueCriteria: true,
		ArbitraryRelationFieldOrder:    true,
		MultipleAutoIncrement:          true,
		NonIDAutoIncrement:             true,
		NonIndexedAutoIncrement:        false,
		ShardKeys:                      false,
	},
	NativeTypeDefaults: map[dmir.ScalarTypeKind]*dmir.NativeType{
		dmir.KindString:   {Name: "Text"},
		dmir.KindBoolean:  {Name: "Boolean"},
		dmir.KindInt:      {Name: "Integer"},
		dmir.KindBigInt:   {Name: "BigInt"},
		dmir.KindFloat:    {Name: "DoublePrecision"},
		dmir.KindDecimal:  {Name: "Decimal"},
		dmir.KindDateTime: {Name: "Timestamp"},
		dmir.KindJson:     {Name: "JsonB"},
		dmir.KindBytes:    {Name: "ByteA"},
	},
}

// CockroachDB inherits postgres' wire-level capabilities but additionally
// supports shard keys (its distributed-primary-key hash feature) and
// forbids more than one auto-increment column per table.
var CockroachDB = &Connector{
	Provider:       "cockroachdb",
	MinimumVersion: "21.2",
	Capabilities: Capabilities{
		ScalarLists:                    true,
		JSON:                           true,
		RelationsOverNonUniqueCriteria: true,
		ArbitraryRelationFieldOrder:    true,
		MultipleAutoIncrement:          false,
		NonIDAutoIncrement:             true,
		NonIndexedAutoIncrement:        false,
		ShardKeys:                      true,
	},
	NativeTypeDefaults: Postgres.NativeTypeDefaults,
}

// MySQL forbids scalar lists entirely, requires relation references to
// match a unique criterion of the related model in its declared field
// order, and limits
// a table to a single auto-increment column which must itself be indexed.
var MySQL = &Connector{
	Provider:       "mysql",
	MinimumVersion: "5.7",
	Capabilities: Capabilities{
		ScalarLists:                    false,
		JSON:                           true,
		RelationsOverNonUniqueCriteria: false,
		ArbitraryRelationFieldOrder:    false,
		MultipleAutoIncrement:          false,
		NonIDAutoIncrement:             true,
		NonIndexedAutoIncrement:        false,
		ShardKeys:                      false,
	},
	ValidateFieldFn: func(field *dmir.ScalarField) error {
		if field.NativeType != nil && field.NativeType.Name == "VarChar" && len(field.NativeType.Args) == 0 {
			return fmt.Errorf("VarChar requires a length argument on mysql, e.g. @db.VarChar(191)")
		}
		return nil
	},
	NativeTypeDefaults: map[dmir.ScalarTypeKind]*dmir.NativeType{
		dmir.KindString:   {Name: "VarChar", Args: []string{"191"}},
		dmir.KindBoolean:  {Name: "TinyInt", Args: []string{"1"}},
		dmir.KindInt:      {Name: "Int"},
		dmir.KindBigInt:   {Name: "BigInt"},
		dmir.KindFloat:    {Name: "Double"},
		dmir.KindDecimal:  {Name: "Decimal"},
		dmir.KindDateTime: {Name: "DateTime", Args: []string{"3"}},
		dmir.KindJson:     {Name: "Json"},
		dmir.KindBytes:    {Name: "LongBlob"},
	},
}

// SQLite has no real type system of its own (everything is dynamically
// typed storage classes) and no native auto-increment beyond ROWID
// aliasing, so it allows a single auto-increment column, only on the id,
// and no scalar lists. It declares no native-type defaults and no
// structural validators.
var SQLite = &Connector{
	Provider:       "sqlite",
	MinimumVersion: "3.35",
	Capabilities: Capabilities{
		ScalarLists:                    false,
		JSON:                           true,
		RelationsOverNonUniqueCriteria: true,
		ArbitraryRelationFieldOrder:    true,
		MultipleAutoIncrement:          false,
		NonIDAutoIncrement:             false,
		NonIndexedAutoIncrement:        false,
		ShardKeys:                      false,
	},
	NativeTypeDefaults: map[dmir.ScalarTypeKind]*dmir.NativeType{},
}

// ByProvider resolves one of the builtin connectors by its datasource
// provider string, as written in a `provider = "..."` datasource block.
func ByProvider(provider string) (*Connector, bool) {
	switch provider {
	case "postgresql", "postgres":
		return Postgres, true
	case "cockroachdb":
		return CockroachDB, true
	case "mysql":
		return MySQL, true
	case "sqlite":
		return SQLite, true
	default:
		return nil, false
	}
}
