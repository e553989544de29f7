package dmir

// ReservedTypeNames is the closed set of model/enum names that collide with
// runtime- or client-reserved tokens. Comparison is case-sensitive and
// exact (R5). Grounded on the teacher's database/reserved_names.go table:
// the generated client's own vocabulary (scalar type names, the root query
// types, and the client class itself) plus the full list of JavaScript
// reserved words the teacher carries verbatim from prisma-client's
// generateClient.ts, since a model or enum named either would shadow
// generated code.
var ReservedTypeNames = map[string]struct{}{
	"String":       {},
	"Int":          {},
	"Float":        {},
	"Boolean":      {},
	"DateTime":     {},
	"Json":         {},
	"Bytes":        {},
	"Decimal":      {},
	"BigInt":       {},
	"Null":         {},
	"Enum":         {},
	"Query":        {},
	"Mutation":     {},
	"Subscription": {},
	"PrismaClient": {},
	"Datasource":   {},
	"Datasources":  {},
	"Generator":    {},

	// JavaScript reserved words.
	"async":      {},
	"await":      {},
	"break":      {},
	"case":       {},
	"catch":      {},
	"class":      {},
	"const":      {},
	"continue":   {},
	"debugger":   {},
	"default":    {},
	"delete":     {},
	"do":         {},
	"else":       {},
	"enum":       {},
	"export":     {},
	"extends":    {},
	"false":      {},
	"finally":    {},
	"for":        {},
	"function":   {},
	"if":         {},
	"implements": {},
	"import":     {},
	"in":         {},
	"instanceof": {},
	"interface":  {},
	"let":        {},
	"new":        {},
	"null":       {},
	"package":    {},
	"private":    {},
	"protected":  {},
	"public":     {},
	"return":     {},
	"super":      {},
	"switch":     {},
	"this":       {},
	"throw":      {},
	"true":       {},
	"try":        {},
	"typeof":     {},
	"using":      {},
	"var":        {},
	"void":       {},
	"while":      {},
	"with":       {},
	"yield":      {},
}

// IsReservedTypeName reports whether name is a reserved model/enum name.
func IsReservedTypeName(name string) bool {
	_, ok := ReservedTypeNames[name]
	return ok
}
