package schema

import (
	"fmt"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// ValidateIntent walks an intent against the versioned field schema:
// required fields, the protocol version constant, enum membership,
// identifier patterns, numeric bounds, and array cardinality. It never
// inspects cross-field relationships or time; those are business rules.
func (v *Validator) ValidateIntent(intent *models.Intent) models.ValidationResult {
	result := models.ValidationResult{Valid: true}

	if intent.ID == "" {
		result.AddError(models.CodeMissingRequiredField, "id", "intent id is required")
	}
	if intent.Version == "" {
		result.AddError(models.CodeMissingRequiredField, "version", "protocol version is required")
	} else if intent.Version != models.ProtocolVersion {
		result.AddError(models.CodeInvalidConstant, "version",
			fmt.Sprintf("version %q does not match %q", intent.Version, models.ProtocolVersion))
	}
	v.checkAddress(&result, "user_address", intent.UserAddress)
	if intent.CreatedAt.IsZero() {
		result.AddError(models.CodeMissingRequiredField, "created_at", "created_at is required")
	}

	v.validateIntentType(&result, intent.IntentType)
	v.validateOperation(&result, &intent.Operation)
	v.validateConstraints(&result, &intent.Constraints)
	v.validatePreferences(&result, &intent.Preferences)
	v.validateTiming(&result, &intent.Timing)
	v.validateExpectedOutcome(&result, &intent.ExpectedOutcome)

	result.ComplianceScore = structuralScore(&result)
	return result
}

func (v *Validator) validateIntentType(r *models.ValidationResult, t models.IntentType) {
	if t == "" {
		r.AddError(models.CodeMissingRequiredField, "intent_type", "intent_type is required")
		return
	}
	for _, known := range models.KnownIntentTypes {
		if t == known {
			return
		}
	}
	r.AddError(models.CodeInvalidEnumValue, "intent_type",
		fmt.Sprintf("unknown intent_type %q", t))
}

func (v *Validator) validateOperation(r *models.ValidationResult, op *models.Operation) {
	if op.Mode == "" {
		r.AddError(models.CodeMissingRequiredField, "operation.mode", "operation mode is required")
	} else {
		valid := false
		for _, known := range models.KnownOperationModes {
			if op.Mode == known {
				valid = true
				break
			}
		}
		if !valid {
			r.AddError(models.CodeInvalidEnumValue, "operation.mode",
				fmt.Sprintf("unknown operation mode %q", op.Mode))
		}
	}

	v.validateFlows(r, "operation.inputs", op.Inputs)
	v.validateFlows(r, "operation.outputs", op.Outputs)
}

func (v *Validator) validateFlows(r *models.ValidationResult, path string, flows []models.AssetFlow) {
	if len(flows) < MinFlows || len(flows) > MaxFlows {
		r.AddError(models.CodeInvalidCardinality, path,
			fmt.Sprintf("expected %d-%d asset flows, got %d", MinFlows, MaxFlows, len(flows)))
	}
	for i, flow := range flows {
		v.validateAsset(r, fmt.Sprintf("%s[%d].asset", path, i), &flow.Asset)
		v.validateAmountSpec(r, fmt.Sprintf("%s[%d].amount", path, i), flow.Amount)
	}
}

func (v *Validator) validateAsset(r *models.ValidationResult, path string, asset *models.Asset) {
	if asset.Symbol == "" {
		r.AddError(models.CodeMissingRequiredField, path+".symbol", "asset symbol is required")
	}
	v.checkAddress(r, path+".address", asset.Address)
	checkRange(r, path+".decimals", float64(asset.Decimals), 0, MaxDecimals)

	if asset.Type == "" {
		r.AddError(models.CodeMissingRequiredField, path+".type", "asset type is required")
		return
	}
	for _, known := range models.KnownAssetTypes {
		if asset.Type == known {
			return
		}
	}
	r.AddError(models.CodeInvalidEnumValue, path+".type",
		fmt.Sprintf("unknown asset type %q", asset.Type))
}

func (v *Validator) validateAmountSpec(r *models.ValidationResult, path string, spec models.AmountSpec) {
	if err := spec.Validate(); err != nil {
		code := models.CodeMissingRequiredField
		switch spec.Kind {
		case models.AmountExact, models.AmountRange, models.AmountAll:
		default:
			code = models.CodeInvalidEnumValue
		}
		r.AddError(code, path, err.Error())
		return
	}
	switch spec.Kind {
	case models.AmountExact:
		v.checkAmount(r, path+".value", spec.Value)
	case models.AmountRange:
		v.checkAmount(r, path+".min", spec.Min)
		v.checkAmount(r, path+".max", spec.Max)
	case models.AmountAll:
		// no amount payload
	}
}

func (v *Validator) validateConstraints(r *models.ValidationResult, c *models.Constraints) {
	if c.Deadline.IsZero() {
		r.AddError(models.CodeMissingRequiredField, "constraints.deadline", "deadline is required")
	}
	checkRange(r, "constraints.max_slippage_bps", float64(c.MaxSlippageBps), 0, MaxSlippageBps)

	for i, min := range c.MinOutputs {
		path := fmt.Sprintf("constraints.min_outputs[%d]", i)
		if min.Asset == "" {
			r.AddError(models.CodeMissingRequiredField, path+".asset", "min output asset is required")
		}
		v.checkAmount(r, path+".amount", min.Amount)
	}

	if c.LimitPrice != nil {
		if c.LimitPrice.Price <= 0 {
			r.AddError(models.CodeValueOutOfRange, "constraints.limit_price.price",
				"limit price must be positive")
		}
		switch c.LimitPrice.Direction {
		case models.LimitAtLeast, models.LimitAtMost:
		default:
			r.AddError(models.CodeInvalidEnumValue, "constraints.limit_price.direction",
				fmt.Sprintf("unknown limit direction %q", c.LimitPrice.Direction))
		}
	}
}

func (v *Validator) validatePreferences(r *models.ValidationResult, p *models.Preferences) {
	w := p.RankingWeights
	checkRange(r, "preferences.ranking_weights.surplus", w.Surplus, 0, MaxWeight)
	checkRange(r, "preferences.ranking_weights.gas_cost", w.GasCost, 0, MaxWeight)
	checkRange(r, "preferences.ranking_weights.execution_speed", w.ExecutionSpeed, 0, MaxWeight)
	checkRange(r, "preferences.ranking_weights.solver_reputation", w.SolverReputation, 0, MaxWeight)

	if p.Execution.ShowTopN < 0 {
		r.AddError(models.CodeValueOutOfRange, "preferences.execution.show_top_n",
			"show_top_n cannot be negative")
	}
}

func (v *Validator) validateTiming(r *models.ValidationResult, t *models.Timing) {
	if t.SolverWindowMs <= 0 {
		r.AddError(models.CodeValueOutOfRange, "timing.solver_window_ms",
			"solver window must be positive")
	}
	if t.UserDecisionTimeoutMs <= 0 {
		r.AddError(models.CodeValueOutOfRange, "timing.user_decision_timeout_ms",
			"decision timeout must be positive")
	}
	if t.AbsoluteDeadline.IsZero() {
		r.AddError(models.CodeMissingRequiredField, "timing.absolute_deadline",
			"absolute deadline is required")
	}
}

func (v *Validator) validateExpectedOutcome(r *models.ValidationResult, e *models.ExpectedOutcome) {
	for i, out := range e.ExpectedOutputs {
		path := fmt.Sprintf("expected_outcome.expected_outputs[%d]", i)
		if out.Asset == "" {
			r.AddError(models.CodeMissingRequiredField, path+".asset", "expected output asset is required")
		}
		v.checkAmount(r, path+".amount", out.Amount)
	}
	checkRange(r, "expected_outcome.benchmark.confidence", e.Benchmark.Confidence, 0, 1)
}
