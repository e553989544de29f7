package schemaparse

import (
	"regexp"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/schemalint/validate/ast"
	"github.com/schemalint/validate/diagnostics"
)

// Result is everything Parse recovers from a schema source file: the AST
// the validator needs, plus the datasource provider name — not part of the
// validator's own interface, but needed by cmd/schemalint to pick a
// connector.
type Result struct {
	Ast      *ast.SchemaAst
	Provider string
}

var providerPattern = regexp.MustCompile(`provider\s*=\s*"([a-zA-Z0-9_-]+)"`)

// Parse lexes and parses source text into a Result. Byte offsets in the
// returned AST are relative to source, suitable for slicing directly.
func Parse(source string) (*Result, error) {
	raw, err := parser.ParseString("", source)
	if err != nil {
		return nil, err
	}

	result := &Result{Ast: &ast.SchemaAst{}}
	for _, block := range raw.Blocks {
		switch {
		case block.Model != nil:
			m := lowerModel(block.Model)
			result.Ast.Models = append(result.Ast.Models, m)
		case block.Enum != nil:
			result.Ast.Enums = append(result.Ast.Enums, lowerEnum(block.Enum))
		case block.Datasource != nil:
			if m := providerPattern.FindStringSubmatch(block.Datasource.Body); m != nil {
				result.Provider = m[1]
			}
		}
	}
	return result, nil
}

func span(start, end lexer.Position) diagnostics.Span {
	return diagnostics.NewSpan(start.Offset, end.Offset, diagnostics.FileIDZero)
}

func lowerAttribute(a *rawAttribute) ast.Attribute {
	name := a.Name
	if a.Doubled {
		name = "@@" + name
	}
	args := a.Args
	if a.NativeType != "" {
		// `@db.VarChar(191)` — fold the dotted native-type name and its
		// arguments into one Args blob package elaborate can split again.
		args = a.NativeType + "(" + a.Args + ")"
	}
	return ast.Attribute{Name: name, Args: args, Span: span(a.Pos, a.EndPos)}
}

func lowerModel(m *rawModel) ast.Model {
	out := ast.Model{Name: m.Name, Span: span(m.Pos, m.EndPos)}
	for _, member := range m.Members {
		switch {
		case member.Field != nil:
			out.Fields = append(out.Fields, lowerField(member.Field))
		case member.Attribute != nil:
			out.Attributes = append(out.Attributes, lowerAttribute(member.Attribute))
		}
	}
	return out
}

func lowerField(f *rawField) ast.Field {
	rawType := f.Type
	if f.Optional {
		rawType += "?"
	}
	if f.List {
		rawType += "[]"
	}
	out := ast.Field{Name: f.Name, RawType: rawType, Span: span(f.Pos, f.EndPos)}
	for _, a := range f.Attributes {
		out.Attributes = append(out.Attributes, lowerAttribute(a))
	}
	return out
}

func lowerEnum(e *rawEnum) ast.Enum {
	out := ast.Enum{Name: e.Name, Span: span(e.Pos, e.EndPos)}
	for _, v := range e.Values {
		ev := ast.EnumValue{Name: v.Name, Span: span(v.Pos, v.EndPos)}
		for _, a := range v.Attributes {
			ev.Attributes = append(ev.Attributes, lowerAttribute(a))
		}
		out.Values = append(out.Values, ev)
	}
	return out
}
