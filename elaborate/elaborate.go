// Package elaborate builds a dmir.Datamodel from a parsed ast.SchemaAst —
// the "construction of the DMIR from the AST" spec.md §1 names as an
// external collaborator, out of scope for the validator core. It is
// deliberately simple: enough to drive the rule engine end to end from
// real schema source, not a full reimplementation of native-type or
// default-value parsing.
package elaborate

import (
	"strconv"
	"strings"

	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/dmir"
)

var baseScalars = map[string]dmir.ScalarTypeKind{
	"String":   dmir.KindString,
	"Boolean":  dmir.KindBoolean,
	"Int":      dmir.KindInt,
	"BigInt":   dmir.KindBigInt,
	"Float":    dmir.KindFloat,
	"Decimal":  dmir.KindDecimal,
	"DateTime": dmir.KindDateTime,
	"Json":     dmir.KindJson,
	"Bytes":    dmir.KindBytes,
}

// Elaborate lowers the AST into a datamodel. ds may be nil for a schema
// without a datasource block.
func Elaborate(a *ast.SchemaAst, ds *dmir.Datasource) *dmir.Datamodel {
	dm := &dmir.Datamodel{Datasource: ds}

	for _, am := range a.Models {
		dm.Models_ = append(dm.Models_, &dmir.Model{Name: am.Name})
	}
	for _, ae := range a.Enums {
		e := &dmir.Enum{Name: ae.Name}
		for _, v := range ae.Values {
			e.Values = append(e.Values, v.Name)
		}
		dm.Enums_ = append(dm.Enums_, e)
	}

	for i, am := range a.Models {
		m := dm.Models_[i]
		elaborateModelAttributes(am, m)
		for _, af := range am.Fields {
			elaborateField(af, m, dm)
		}
	}
	return dm
}

func elaborateModelAttributes(am ast.Model, m *dmir.Model) {
	for _, attr := range am.Attributes {
		switch attr.Name {
		case "@@ignore":
			m.IsIgnored = true
		case "@@map":
			if s, ok := firstQuoted(attr.Args); ok {
				m.DatabaseName = s
			}
		case "@@id":
			m.IDFieldNames = nameList(attr.Args)
		case "@@unique":
			m.Indexes = append(m.Indexes, dmir.Index{
				Name: namedArg(attr.Args, "name"), Fields: nameList(attr.Args),
				IsUnique: true, Span: am.Span, AttributeSpan: attr.Span,
			})
		case "@@index":
			m.Indexes = append(m.Indexes, dmir.Index{
				Name: namedArg(attr.Args, "name"), Fields: nameList(attr.Args),
				IsUnique: false, Span: am.Span, AttributeSpan: attr.Span,
			})
		}
	}
}

func elaborateField(af ast.Field, m *dmir.Model, dm *dmir.Datamodel) {
	base, arity := splitRawType(af.RawType)

	if _, ok := dm.FindModel(base); ok {
		rf := &dmir.RelationField{Name: af.Name, Span: af.Span, Arity: arity, RelationInfo: dmir.RelationInfo{To: base}}
		for _, attr := range af.Attributes {
			if attr.Name != "relation" {
				continue
			}
			rf.RelationInfo.Name = relationName(attr.Args)
			rf.RelationInfo.Fields = namedList(attr.Args, "fields")
			rf.RelationInfo.References = namedList(attr.Args, "references")
		}
		for _, attr := range af.Attributes {
			if attr.Name == "ignore" {
				rf.IsIgnored = true
			}
		}
		m.RelationFields_ = append(m.RelationFields_, rf)
		return
	}

	sf := &dmir.ScalarField{Name: af.Name, Span: af.Span, Arity: arity}
	if kind, ok := baseScalars[base]; ok {
		sf.Type = dmir.FieldType{Kind: kind}
	} else if _, ok := dm.FindEnum(base); ok {
		sf.Type = dmir.FieldType{Kind: dmir.KindEnum, EnumName: base}
	} else if strings.HasPrefix(base, "Unsupported") {
		sf.Type = dmir.FieldType{Kind: dmir.KindUnsupported, Unsupported: base}
	} else {
		sf.Type = dmir.FieldType{Kind: dmir.KindUnsupported, Unsupported: base}
	}

	for _, attr := range af.Attributes {
		switch attr.Name {
		case "id":
			sf.IsID = true
		case "unique":
			sf.IsUnique = true
		case "updatedAt":
			sf.IsUpdatedAt = true
		case "default":
			sf.Default = parseDefault(attr.Args)
		case "db":
			sf.NativeType = parseNativeType(attr.Args)
		}
	}
	m.ScalarFields_ = append(m.ScalarFields_, sf)
}

func splitRawType(raw string) (base string, arity dmir.Arity) {
	switch {
	case strings.HasSuffix(raw, "[]"):
		return strings.TrimSuffix(raw, "[]"), dmir.List
	case strings.HasSuffix(raw, "?"):
		return strings.TrimSuffix(raw, "?"), dmir.Optional
	default:
		return raw, dmir.Required
	}
}

func firstQuoted(args string) (string, bool) {
	start := strings.IndexByte(args, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(args[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return args[start+1 : start+1+end], true
}

// nameList extracts the bare identifier list inside the first `[...]` in
// args, e.g. "name, fields: [a, b]" with no key -> the first bracket group.
func nameList(args string) []string {
	start := strings.IndexByte(args, '[')
	end := strings.IndexByte(args, ']')
	if start < 0 || end < 0 || end < start {
		return nil
	}
	return splitNames(args[start+1 : end])
}

// namedList extracts the identifier list inside `key: [...]`.
func namedList(args, key string) []string {
	idx := strings.Index(args, key+":")
	if idx < 0 {
		return nil
	}
	rest := args[idx+len(key)+1:]
	start := strings.IndexByte(rest, '[')
	if start < 0 {
		return nil
	}
	end := strings.IndexByte(rest[start:], ']')
	if end < 0 {
		return nil
	}
	return splitNames(rest[start+1 : start+end])
}

func namedArg(args, key string) string {
	idx := strings.Index(args, key+":")
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(args[idx+len(key)+1:])
	if s, ok := firstQuoted(rest); ok {
		return s
	}
	return ""
}

func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// relationName returns the relation's explicit name: either a bare leading
// quoted string (`@relation("CustomName", fields: ...)`) or a `name:`
// keyword argument.
func relationName(args string) string {
	trimmed := strings.TrimSpace(args)
	if strings.HasPrefix(trimmed, `"`) {
		if s, ok := firstQuoted(trimmed); ok {
			return s
		}
	}
	return namedArg(args, "name")
}

func parseDefault(args string) dmir.Default {
	trimmed := strings.TrimSpace(args)
	switch {
	case trimmed == "true":
		return dmir.Default{Kind: dmir.DefaultLiteralBool, Bool: true}
	case trimmed == "false":
		return dmir.Default{Kind: dmir.DefaultLiteralBool, Bool: false}
	case strings.HasPrefix(trimmed, `"`):
		if s, ok := firstQuoted(trimmed); ok {
			return dmir.Default{Kind: dmir.DefaultLiteralString, String: s}
		}
	case strings.Contains(trimmed, "("):
		name := trimmed[:strings.IndexByte(trimmed, '(')]
		return dmir.Default{Kind: dmir.DefaultExpression, ExpressionName: name}
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return dmir.Default{Kind: dmir.DefaultLiteralInt, Int: i}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return dmir.Default{Kind: dmir.DefaultLiteralFloat, Float: f}
	}
	if trimmed != "" {
		return dmir.Default{Kind: dmir.DefaultEnumValue, EnumValue: trimmed}
	}
	return dmir.Default{}
}

func parseNativeType(args string) *dmir.NativeType {
	name := args
	var rawArgs string
	if i := strings.IndexByte(args, '('); i >= 0 {
		name = args[:i]
		rawArgs = strings.TrimSuffix(args[i+1:], ")")
	}
	nt := &dmir.NativeType{Name: name}
	for _, a := range strings.Split(rawArgs, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			nt.Args = append(nt.Args, a)
		}
	}
	return nt
}
