package models

// Severity grades a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Validation error and rule codes. Codes are stable identifiers solvers
// and UIs can match on; messages are advisory.
const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeInvalidConstant      = "INVALID_CONSTANT"
	CodeInvalidEnumValue     = "INVALID_ENUM_VALUE"
	CodeInvalidPattern       = "INVALID_PATTERN"
	CodeValueOutOfRange      = "VALUE_OUT_OF_RANGE"
	CodeInvalidCardinality   = "INVALID_CARDINALITY"

	CodeExpiredDeadline   = "EXPIRED_DEADLINE"
	CodeMissingLimitPrice = "MISSING_LIMIT_PRICE"

	CodeMinOutputNotMet       = "MIN_OUTPUT_NOT_MET"
	CodeSlippageExceeded      = "SLIPPAGE_EXCEEDED"
	CodeExpectedOutputMissing = "EXPECTED_OUTPUT_MISSING"
	CodeDeadlineExceeded      = "DEADLINE_EXCEEDED"
	CodeGasUnreasonable       = "GAS_UNREASONABLE"
)

// ValidationError is a single structural or business failure with a stable
// code and the dotted path of the offending field.
type ValidationError struct {
	Code      string   `json:"code"`
	FieldPath string   `json:"field_path,omitempty"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// ValidationResult is the outcome of validating an intent or solution.
// Errors make the document invalid; warnings only erode the score.
type ValidationResult struct {
	Valid           bool              `json:"valid"`
	ComplianceScore float64           `json:"compliance_score"`
	Errors          []ValidationError `json:"errors,omitempty"`
	Warnings        []string          `json:"warnings,omitempty"`
}

// AddError appends an error-severity finding and marks the result invalid.
func (r *ValidationResult) AddError(code, fieldPath, message string) {
	r.Errors = append(r.Errors, ValidationError{
		Code:      code,
		FieldPath: fieldPath,
		Message:   message,
		Severity:  SeverityError,
	})
	r.Valid = false
}

// AddWarning appends a warning message.
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// ErrorCount returns the number of error-severity findings.
func (r *ValidationResult) ErrorCount() int {
	n := 0
	for _, e := range r.Errors {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}
