// Package symbols implements the symbol table: every named entity placed in
// a scope, the scopes themselves, and the lookup-order bookkeeping that
// (resolve) and (bind) build on. Dispatch is by Kind field plus a safe
// downcast to the concrete struct, not an open interface hierarchy, mirroring
// the tagged-union shape the rest of this core uses for types and
// expressions.
package symbols

// Kind tags every Symbol variant.
type Kind uint8

const (
	KindCompilationUnit Kind = iota
	KindPackage
	KindDefinition // module/interface/program template, not yet instantiated
	KindInstance
	KindInstanceBody
	KindParameter
	KindVariable
	KindPort
	KindNet
	KindField
	KindSubroutine
	KindGenerateBlock
	KindStatementBlock
	KindTypeAlias
	KindGenvar
	KindEnumMember
	KindRoot
)

var kindNames = map[Kind]string{
	KindCompilationUnit: "compilation unit",
	KindPackage:         "package",
	KindDefinition:      "definition",
	KindInstance:        "instance",
	KindInstanceBody:    "instance body",
	KindParameter:       "parameter",
	KindVariable:        "variable",
	KindPort:            "port",
	KindNet:             "net",
	KindField:           "field",
	KindSubroutine:      "subroutine",
	KindGenerateBlock:   "generate block",
	KindStatementBlock:  "statement block",
	KindTypeAlias:       "type alias",
	KindGenvar:          "genvar",
	KindEnumMember:      "enum member",
	KindRoot:            "root",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown symbol kind"
}
