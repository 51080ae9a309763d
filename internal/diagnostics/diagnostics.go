package diagnostics

// Code classifies non-fatal findings raised while answering a query.
type Code string

const (
	// CodeLocatorMiss marks a structural match whose text position could not
	// be recovered. The match is dropped from the results.
	CodeLocatorMiss Code = "locator_miss"
)

// Stage identifies the pipeline stage that raised a diagnostic.
type Stage string

const (
	StageMatch  Stage = "match"
	StageLocate Stage = "locate"
)

// Severity indicates diagnostic impact.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Definition is canonical metadata for one diagnostic code.
type Definition struct {
	Code            Code
	DefaultStage    Stage
	DefaultSeverity Severity
}

var definitions = map[Code]Definition{
	CodeLocatorMiss: {
		Code:            CodeLocatorMiss,
		DefaultStage:    StageLocate,
		DefaultSeverity: SeverityInfo,
	},
}

// DefinitionFor resolves canonical metadata for a diagnostic code.
func DefinitionFor(code Code) Definition {
	if definition, ok := definitions[code]; ok {
		return definition
	}

	return Definition{
		Code:            code,
		DefaultStage:    StageMatch,
		DefaultSeverity: SeverityWarning,
	}
}

// Issue is a single diagnostic about one key path.
type Issue struct {
	Code     Code     `json:"code" yaml:"code"`
	Stage    Stage    `json:"stage,omitempty" yaml:"stage,omitempty"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Severity Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// New builds an issue with the code's default stage and severity.
func New(code Code, path string, message string) Issue {
	definition := DefinitionFor(code)
	return Issue{
		Code:     code,
		Stage:    definition.DefaultStage,
		Path:     path,
		Severity: definition.DefaultSeverity,
		Message:  message,
	}
}

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}

	return false
}

// CountByCode tallies issues per code.
func CountByCode(issues []Issue) map[Code]int {
	if len(issues) == 0 {
		return nil
	}
	counts := make(map[Code]int)
	for _, issue := range issues {
		counts[issue.Code]++
	}
	return counts
}
