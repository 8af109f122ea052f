package diag

import "fmt"

// Severity is the enumeration of diagnostic severities.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Category groups diagnostic codes for display purposes, mirroring the
// taxonomy in the error-handling design: parse-level (passed through),
// name-resolution, type-mismatch, constant-evaluation, elaboration, and
// linting.
type Category int

const (
	CategoryName Category = iota
	CategoryType
	CategoryConstEval
	CategoryElaboration
	CategoryLint
	CategorySyntax // passed through verbatim from the external parser
	CategoryConfig
)

var categoryNames = map[Category]string{
	CategoryName:         "Name",
	CategoryType:         "Type",
	CategoryConstEval:    "Constant Evaluation",
	CategoryElaboration:  "Elaboration",
	CategoryLint:         "Lint",
	CategorySyntax:       "Syntax",
	CategoryConfig:       "Configuration",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "Diagnostic"
}

// Code is a short, stable identifier for a diagnostic, such as
// "name-not-found" or "constexpr-recursion". Codes are what diagnostics are
// deduplicated by, paired with their first location.
type Code string

// Well-known codes referenced directly by the compilation driver and its
// collaborators. Additional ad-hoc codes may be constructed inline by
// callers; these constants exist for codes that multiple packages need to
// recognize (e.g. to special-case budget-exceeded diagnostics under
// lintMode).
const (
	CodeNameNotFound          Code = "name-not-found"
	CodeUsedBeforeDeclaration Code = "used-before-declaration"
	CodeAmbiguousImport       Code = "ambiguous-wildcard-import"
	CodeDuplicateDefinition   Code = "duplicate-definition"
	CodeTypeMismatch          Code = "type-mismatch"
	CodeNotConstant           Code = "not-constant"
	CodeConstexprRecursion    Code = "constexpr-recursion"
	CodeConstexprStepLimit    Code = "constexpr-step-limit"
	CodeGenerateStepLimit     Code = "generate-step-limit"
	CodeDefParamStepLimit     Code = "defparam-step-limit"
	CodeErrorLimitExceeded    Code = "error-limit-exceeded"
	CodeInstanceDepthExceeded Code = "instance-depth-exceeded"
)

// Diagnostic is a single reported finding: a code, a location, a severity,
// formatted message arguments, and any multiplicity notes accumulated by
// deduplication.
type Diagnostic struct {
	Code     Code
	Category Category
	Severity Severity
	Location SourceLocation
	Range    SourceRange
	Message  string

	// Notes records additional context lines. Bag.Add appends one empty
	// entry each time the same (code, location) is reported again; Render
	// skips empty entries and, whenever Notes is non-empty, prints a
	// "(reported N times)" line with N = len(Notes)+1.
	Notes []string
}

func (d Diagnostic) isError() bool {
	return d.Severity == SeverityError
}

// Errorf builds a Diagnostic with a formatted message, convenient for the
// many call sites that construct one-off diagnostics inline.
func Errorf(code Code, cat Category, loc SourceLocation, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Category: cat,
		Severity: SeverityError,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Warnf is the warning-severity counterpart to Errorf.
func Warnf(code Code, cat Category, loc SourceLocation, format string, args ...any) Diagnostic {
	d := Errorf(code, cat, loc, format, args...)
	d.Severity = SeverityWarning
	return d
}
