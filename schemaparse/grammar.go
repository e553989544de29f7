// Package schemaparse lexes and parses schema source text into an
// ast.SchemaAst. It is the external collaborator spec.md §1 places outside
// the validator core; it is supplied here only so the module is runnable
// end to end, built with github.com/alecthomas/participle/v2 the way the
// teacher builds its own schema parser.
package schemaparse

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var schemaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[-+]?[0-9]+(\.[0-9]+)?`},
	{Name: "Punct", Pattern: `[{}()\[\]?,.:@=]`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// rawAttribute captures a `@name(...)` or `@@name(...)` annotation. Args is
// left as raw unparsed token text (anything up to the matching close
// paren) — package elaborate gives it structure.
type rawAttribute struct {
	Pos        lexer.Position
	EndPos     lexer.Position `parser:"EndPos"`
	Doubled    bool           `parser:"( @('@' '@')"`
	Single     bool           `parser:"| @'@' )"`
	Name       string         `parser:"@Ident"`
	NativeType string         `parser:"('.' @Ident)?"`
	Args       string         `parser:"('(' @(~')')* ')')?"`
}

type rawField struct {
	Pos        lexer.Position
	EndPos     lexer.Position  `parser:"EndPos"`
	Name       string          `parser:"@Ident"`
	Type       string          `parser:"@Ident"`
	Optional   bool            `parser:"( @'?'"`
	List       bool            `parser:"| @('[' ']') )?"`
	Attributes []*rawAttribute `parser:"@@*"`
}

type rawEnumValue struct {
	Pos        lexer.Position
	EndPos     lexer.Position  `parser:"EndPos"`
	Name       string          `parser:"@Ident"`
	Attributes []*rawAttribute `parser:"@@*"`
}

// rawModelMember disambiguates a field declaration (`name Type ...`) from a
// standalone model-level attribute (`@@id([...])`) by lookahead on the
// leading token.
type rawModelMember struct {
	Field     *rawField     `parser:"  @@"`
	Attribute *rawAttribute `parser:"| @@"`
}

type rawModel struct {
	Pos     lexer.Position
	EndPos  lexer.Position    `parser:"EndPos"`
	Name    string            `parser:"'model' @Ident '{'"`
	Members []*rawModelMember `parser:"@@* '}'"`
}

type rawEnum struct {
	Pos    lexer.Position
	EndPos lexer.Position  `parser:"EndPos"`
	Name   string          `parser:"'enum' @Ident '{'"`
	Values []*rawEnumValue `parser:"@@* '}'"`
}

// rawKeywordBlock is a `datasource NAME { ... }` or `generator NAME { ... }`
// declaration. Its body is kept as raw token text; Parse extracts the
// datasource provider name from it with a regular expression and ignores
// the rest, including generator options.
type rawKeywordBlock struct {
	Name string `parser:"@Ident '{'"`
	Body string `parser:"@(~'}')* '}'"`
}

// rawBlock is a top-level declaration in the source file.
type rawBlock struct {
	Model      *rawModel        `parser:"  @@"`
	Enum       *rawEnum         `parser:"| @@"`
	Datasource *rawKeywordBlock `parser:"| 'datasource' @@"`
	Generator  *rawKeywordBlock `parser:"| 'generator' @@"`
}

type rawSchema struct {
	Blocks []*rawBlock `parser:"@@*"`
}

var parser = participle.MustBuild[rawSchema](
	participle.Lexer(schemaLexer),
	participle.Elide("Whitespace", "Comment", "Newline"),
	participle.UseLookahead(4),
)
