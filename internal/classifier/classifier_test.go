package classifier

import (
	"testing"

	"github.com/yourusername/intent-protocol/engine-service/internal/models"
)

func swapIntent() *models.Intent {
	return &models.Intent{
		ID:         "intent-1",
		IntentType: models.IntentTypeSwapExactInput,
		Operation: models.Operation{
			Mode: models.ModeExactInput,
			Inputs: []models.AssetFlow{
				{Asset: models.Asset{Symbol: "USDC", Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}},
			},
			Outputs: []models.AssetFlow{
				{Asset: models.Asset{Symbol: "WETH", Address: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}},
			},
		},
		Constraints: models.Constraints{MaxSlippageBps: 50},
		Preferences: models.Preferences{
			RankingWeights: models.RankingWeights{Surplus: 70, GasCost: 10, ExecutionSpeed: 10, SolverReputation: 10},
		},
	}
}

func TestCategory(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		mutate   func(*models.Intent)
		expected models.Category
	}{
		{
			name:     "Plain swap",
			mutate:   func(*models.Intent) {},
			expected: models.CategorySwap,
		},
		{
			name: "Limit order",
			mutate: func(i *models.Intent) {
				i.IntentType = models.IntentTypeLimitBuy
				i.Operation.Mode = models.ModeLimitOrder
			},
			expected: models.CategoryLimitOrder,
		},
		{
			name: "Round trip through same asset is arbitrage",
			mutate: func(i *models.Intent) {
				i.Operation.Outputs = append(i.Operation.Outputs, models.AssetFlow{
					Asset: models.Asset{Symbol: "USDC", Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
				})
			},
			expected: models.CategoryArbitrage,
		},
		{
			name: "Multi-protocol multi-leg is complex defi",
			mutate: func(i *models.Intent) {
				i.Constraints.AllowedProtocols = []string{"uniswap_v3", "curve"}
				i.Operation.Outputs = append(i.Operation.Outputs, models.AssetFlow{
					Asset: models.Asset{Symbol: "DAI", Address: "0xcccccccccccccccccccccccccccccccccccccccc"},
				})
			},
			expected: models.CategoryComplexDeFi,
		},
		{
			name:     "Unknown type is other",
			mutate:   func(i *models.Intent) { i.IntentType = "perp.open" },
			expected: models.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := swapIntent()
			tt.mutate(intent)

			got := c.Classify(intent).PrimaryCategory
			if got != tt.expected {
				t.Errorf("PrimaryCategory = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestPriority(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		weights  models.RankingWeights
		expected models.Priority
	}{
		{
			name:     "Surplus dominates",
			weights:  models.RankingWeights{Surplus: 70, GasCost: 10, ExecutionSpeed: 10, SolverReputation: 10},
			expected: models.PriorityOutput,
		},
		{
			name:     "Gas cost dominates",
			weights:  models.RankingWeights{Surplus: 10, GasCost: 60, ExecutionSpeed: 20, SolverReputation: 10},
			expected: models.PriorityCost,
		},
		{
			name:     "Speed dominates",
			weights:  models.RankingWeights{Surplus: 15, GasCost: 15, ExecutionSpeed: 60, SolverReputation: 10},
			expected: models.PrioritySpeed,
		},
		{
			name:     "No clear dominance is balanced",
			weights:  models.RankingWeights{Surplus: 35, GasCost: 30, ExecutionSpeed: 25, SolverReputation: 10},
			expected: models.PriorityBalanced,
		},
		{
			name:     "Equal weights are balanced",
			weights:  models.RankingWeights{Surplus: 25, GasCost: 25, ExecutionSpeed: 25, SolverReputation: 25},
			expected: models.PriorityBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := swapIntent()
			intent.Preferences.RankingWeights = tt.weights

			got := c.Classify(intent).DetectedPriority
			if got != tt.expected {
				t.Errorf("DetectedPriority = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestComplexity(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		mutate   func(*models.Intent)
		expected models.Complexity
	}{
		{
			name:     "Two assets few constraints is simple",
			mutate:   func(*models.Intent) {},
			expected: models.ComplexitySimple,
		},
		{
			name: "Extra constraints make it moderate",
			mutate: func(i *models.Intent) {
				gas := uint64(500000)
				i.Constraints.MaxGas = &gas
				i.Constraints.MinOutputs = []models.MinOutput{{Asset: "0xbb", Amount: "1"}}
			},
			expected: models.ComplexityModerate,
		},
		{
			name: "Many assets and routing lists are complex",
			mutate: func(i *models.Intent) {
				gas := uint64(500000)
				i.Constraints.MaxGas = &gas
				i.Constraints.AllowedProtocols = []string{"uniswap_v3", "curve"}
				i.Constraints.DeniedProtocols = []string{"sushiswap"}
				for j := 0; j < 4; j++ {
					i.Operation.Outputs = append(i.Operation.Outputs, i.Operation.Outputs[0])
				}
			},
			expected: models.ComplexityComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := swapIntent()
			tt.mutate(intent)

			got := c.Classify(intent).ComplexityLevel
			if got != tt.expected {
				t.Errorf("ComplexityLevel = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestRisk(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		mutate   func(*models.Intent)
		expected models.RiskLevel
	}{
		{
			name:     "Tight slippage no urgency is low",
			mutate:   func(*models.Intent) {},
			expected: models.RiskLow,
		},
		{
			name:     "High slippage tolerance is medium",
			mutate:   func(i *models.Intent) { i.Constraints.MaxSlippageBps = 800 },
			expected: models.RiskMedium,
		},
		{
			name: "Urgent auto-execute is medium",
			mutate: func(i *models.Intent) {
				i.Preferences.Execution.Urgency = "high"
				i.Preferences.Execution.AutoExecute = true
			},
			expected: models.RiskMedium,
		},
		{
			name: "Both together are high",
			mutate: func(i *models.Intent) {
				i.Constraints.MaxSlippageBps = 800
				i.Preferences.Execution.Urgency = "high"
				i.Preferences.Execution.AutoExecute = true
			},
			expected: models.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := swapIntent()
			tt.mutate(intent)

			got := c.Classify(intent).RiskLevel
			if got != tt.expected {
				t.Errorf("RiskLevel = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestConfidenceCompleteness(t *testing.T) {
	c := New()

	bare := swapIntent()
	if got := c.Classify(bare).Confidence; got != 0 {
		t.Errorf("Confidence for bare intent = %f, expected 0", got)
	}

	full := swapIntent()
	full.Metadata.OriginalInput = "swap usdc for weth"
	full.Metadata.InputConfidence = 0.9
	full.Metadata.Tags = []string{"dex"}
	full.Preferences.OptimizationGoal = "max_output"
	full.ExpectedOutcome.ExpectedOutputs = []models.ExpectedOutput{{Asset: "0xbb", Amount: "1"}}
	full.ExpectedOutcome.Benchmark.Confidence = 0.9

	if got := c.Classify(full).Confidence; got != 1 {
		t.Errorf("Confidence for complete intent = %f, expected 1", got)
	}
}
