package schema

import (
	"fmt"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

// ValidateSolution checks a solution's structural correctness. Whether it
// honors its intent's constraints is the compliance checker's job.
func (v *Validator) ValidateSolution(sol *models.Solution) models.ValidationResult {
	result := models.ValidationResult{Valid: true}

	if sol.ID == "" {
		result.AddError(models.CodeMissingRequiredField, "id", "solution id is required")
	}
	if sol.IntentID == "" {
		result.AddError(models.CodeMissingRequiredField, "intent_id", "intent id is required")
	}
	v.checkAddress(&result, "solver_address", sol.SolverAddress)
	if sol.SubmittedAt.IsZero() {
		result.AddError(models.CodeMissingRequiredField, "submitted_at", "submission timestamp is required")
	}

	if sol.Transaction.Data == "" {
		result.AddError(models.CodeMissingRequiredField, "transaction.data", "serialized transaction is required")
	} else if !v.hexPattern.MatchString(sol.Transaction.Data) {
		result.AddError(models.CodeInvalidPattern, "transaction.data", "transaction data must be 0x-prefixed hex")
	}
	if sol.Transaction.Hash == "" {
		result.AddError(models.CodeMissingRequiredField, "transaction.hash", "transaction hash is required")
	} else if !v.hexPattern.MatchString(sol.Transaction.Hash) {
		result.AddError(models.CodeInvalidPattern, "transaction.hash", "transaction hash must be 0x-prefixed hex")
	}

	if len(sol.PromisedOutputs) < MinFlows || len(sol.PromisedOutputs) > MaxFlows {
		result.AddError(models.CodeInvalidCardinality, "promised_outputs",
			fmt.Sprintf("expected %d-%d promised outputs, got %d", MinFlows, MaxFlows, len(sol.PromisedOutputs)))
	}
	for i, out := range sol.PromisedOutputs {
		path := fmt.Sprintf("promised_outputs[%d]", i)
		if out.Asset == "" {
			result.AddError(models.CodeMissingRequiredField, path+".asset", "promised output asset is required")
		}
		v.checkAmount(&result, path+".amount", out.Amount)
	}

	checkRange(&result, "estimated_slippage_bps", float64(sol.EstimatedSlippageBps), 0, MaxSlippageBps)

	for i, fee := range sol.ProtocolFees {
		path := fmt.Sprintf("protocol_fees[%d]", i)
		if fee.Asset == "" {
			result.AddError(models.CodeMissingRequiredField, path+".asset", "fee asset is required")
		}
		v.checkAmount(&result, path+".amount", fee.Amount)
	}

	if sol.Strategy.Hops < 0 {
		result.AddError(models.CodeValueOutOfRange, "strategy.hops", "hop count cannot be negative")
	}

	result.ComplianceScore = structuralScore(&result)
	return result
}
