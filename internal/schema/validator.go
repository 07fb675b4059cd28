package schema

import (
	"fmt"
	"regexp"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// Field bounds of the versioned intent/solution schema.
const (
	MaxSlippageBps = 10000
	MaxWeight      = 100
	MaxDecimals    = 18
	MinFlows       = 1
	MaxFlows       = 10
)

// Validator performs structural validation of intents and solutions
// against the versioned field schema. It holds only compiled patterns,
// never per-document state, so a single value is safe to share across
// concurrent evaluations.
type Validator struct {
	addressPattern *regexp.Regexp
	amountPattern  *regexp.Regexp
	hexPattern     *regexp.Regexp
}

// NewValidator compiles the schema patterns.
func NewValidator() *Validator {
	return &Validator{
		addressPattern: regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`),
		amountPattern:  regexp.MustCompile(`^[0-9]+$`),
		hexPattern:     regexp.MustCompile(`^0x[0-9a-fA-F]+$`),
	}
}

func (v *Validator) checkAddress(r *models.ValidationResult, path, value string) {
	if value == "" {
		r.AddError(models.CodeMissingRequiredField, path, "address is required")
		return
	}
	if !v.addressPattern.MatchString(value) {
		r.AddError(models.CodeInvalidPattern, path, fmt.Sprintf("%q is not a valid address", value))
	}
}

func (v *Validator) checkAmount(r *models.ValidationResult, path, value string) {
	if value == "" {
		r.AddError(models.CodeMissingRequiredField, path, "amount is required")
		return
	}
	if !v.amountPattern.MatchString(value) {
		r.AddError(models.CodeInvalidPattern, path, fmt.Sprintf("%q is not a base-unit integer amount", value))
	}
}

func checkRange(r *models.ValidationResult, path string, value, min, max float64) {
	if value < min || value > max {
		r.AddError(models.CodeValueOutOfRange, path,
			fmt.Sprintf("value %g outside [%g, %g]", value, min, max))
	}
}

// structuralScore folds structural findings into a bounded [0,100] score.
// Errors dominate warnings by design: one hard violation outweighs any
// number of stylistic warnings.
func structuralScore(r *models.ValidationResult) float64 {
	score := 100.0 - 35.0*float64(r.ErrorCount()) - 15.0*float64(len(r.Warnings))
	if score < 0 {
		return 0
	}
	return score
}
