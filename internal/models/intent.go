package models

import (
	"fmt"
	"time"
)

// ProtocolVersion is the intent standard version this engine accepts.
const ProtocolVersion = "1.0.0"

// IntentType identifies the declared operation family of an intent.
type IntentType string

const (
	IntentTypeSwapExactInput  IntentType = "swap.exact_input"
	IntentTypeSwapExactOutput IntentType = "swap.exact_output"
	IntentTypeLimitBuy        IntentType = "limit.buy"
	IntentTypeLimitSell       IntentType = "limit.sell"
)

// KnownIntentTypes lists the accepted intent type values.
var KnownIntentTypes = []IntentType{
	IntentTypeSwapExactInput,
	IntentTypeSwapExactOutput,
	IntentTypeLimitBuy,
	IntentTypeLimitSell,
}

// IsLimit reports whether the intent type belongs to the limit-order family.
func (t IntentType) IsLimit() bool {
	return t == IntentTypeLimitBuy || t == IntentTypeLimitSell
}

// ExpectedMode returns the operation mode this intent type requires.
// Unknown types return an empty mode.
func (t IntentType) ExpectedMode() OperationMode {
	switch t {
	case IntentTypeSwapExactInput:
		return ModeExactInput
	case IntentTypeSwapExactOutput:
		return ModeExactOutput
	case IntentTypeLimitBuy, IntentTypeLimitSell:
		return ModeLimitOrder
	default:
		return ""
	}
}

// OperationMode describes how the input/output amounts bind the trade.
type OperationMode string

const (
	ModeExactInput  OperationMode = "exact_input"
	ModeExactOutput OperationMode = "exact_output"
	ModeLimitOrder  OperationMode = "limit_order"
)

// KnownOperationModes lists the accepted operation mode values.
var KnownOperationModes = []OperationMode{ModeExactInput, ModeExactOutput, ModeLimitOrder}

// AmountKind tags the AmountSpec variant.
type AmountKind string

const (
	AmountExact AmountKind = "exact"
	AmountRange AmountKind = "range"
	AmountAll   AmountKind = "all"
)

// AmountSpec is a tagged variant over the three ways an intent can
// specify an asset amount. Amounts are base-unit integer strings.
type AmountSpec struct {
	Kind  AmountKind `json:"kind"`
	Value string     `json:"value,omitempty"`
	Min   string     `json:"min,omitempty"`
	Max   string     `json:"max,omitempty"`
}

// Validate checks the variant payload matches its tag. The switch is
// exhaustive over AmountKind so an unrecognized tag is an explicit error
// rather than a silent fallthrough.
func (a AmountSpec) Validate() error {
	switch a.Kind {
	case AmountExact:
		if a.Value == "" {
			return fmt.Errorf("exact amount requires value")
		}
	case AmountRange:
		if a.Min == "" || a.Max == "" {
			return fmt.Errorf("range amount requires min and max")
		}
	case AmountAll:
		if a.Value != "" || a.Min != "" || a.Max != "" {
			return fmt.Errorf("all-available amount carries no value")
		}
	default:
		return fmt.Errorf("unknown amount kind %q", a.Kind)
	}
	return nil
}

// AssetType classifies the asset standard.
type AssetType string

const (
	AssetERC20  AssetType = "erc20"
	AssetNative AssetType = "native"
)

// KnownAssetTypes lists the accepted asset type values.
var KnownAssetTypes = []AssetType{AssetERC20, AssetNative}

// Asset identifies a token.
type Asset struct {
	Symbol   string    `json:"symbol"`
	Address  string    `json:"address"`
	Decimals int       `json:"decimals"`
	Type     AssetType `json:"type"`
}

// AssetFlow pairs an asset with its amount specification.
type AssetFlow struct {
	Asset  Asset      `json:"asset"`
	Amount AmountSpec `json:"amount"`
}

// Operation is the typed trade operation of an intent.
type Operation struct {
	Mode    OperationMode `json:"mode"`
	Inputs  []AssetFlow   `json:"inputs"`
	Outputs []AssetFlow   `json:"outputs"`
}

// MinOutput is a hard floor on a promised output amount.
type MinOutput struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// LimitDirection states which side of the limit price is acceptable.
type LimitDirection string

const (
	LimitAtLeast LimitDirection = "at_least"
	LimitAtMost  LimitDirection = "at_most"
)

// LimitPrice is the reference price for limit-order intents.
type LimitPrice struct {
	Price     float64        `json:"price"`
	Direction LimitDirection `json:"direction"`
}

// Constraints are the hard requirements every solution must honor.
type Constraints struct {
	Deadline         time.Time   `json:"deadline"`
	MaxSlippageBps   int         `json:"max_slippage_bps"`
	MinOutputs       []MinOutput `json:"min_outputs,omitempty"`
	MaxGas           *uint64     `json:"max_gas,omitempty"`
	AllowedProtocols []string    `json:"allowed_protocols,omitempty"`
	DeniedProtocols  []string    `json:"denied_protocols,omitempty"`
	LimitPrice       *LimitPrice `json:"limit_price,omitempty"`
}

// RankingWeights is the user-declared importance of each ranking signal.
// The four weights are expected to sum to 100.
type RankingWeights struct {
	Surplus          float64 `json:"surplus"`
	GasCost          float64 `json:"gas_cost"`
	ExecutionSpeed   float64 `json:"execution_speed"`
	SolverReputation float64 `json:"solver_reputation"`
}

// Sum returns the total of the four weights.
func (w RankingWeights) Sum() float64 {
	return w.Surplus + w.GasCost + w.ExecutionSpeed + w.SolverReputation
}

// ExecutionPrefs are soft preferences about how results are presented
// and acted on.
type ExecutionPrefs struct {
	ShowTopN          int    `json:"show_top_n"`
	AutoExecute       bool   `json:"auto_execute"`
	Urgency           string `json:"urgency,omitempty"`
	RequireSimulation bool   `json:"require_simulation"`
}

// Preferences are the intent's soft preferences.
type Preferences struct {
	OptimizationGoal string         `json:"optimization_goal,omitempty"`
	RankingWeights   RankingWeights `json:"ranking_weights"`
	Execution        ExecutionPrefs `json:"execution"`
}

// Timing bounds the auction lifecycle.
type Timing struct {
	SolverWindowMs        int64     `json:"solver_window_ms"`
	UserDecisionTimeoutMs int64     `json:"user_decision_timeout_ms"`
	AbsoluteDeadline      time.Time `json:"absolute_deadline"`
}

// ExpectedOutput is a benchmark output amount declared by the intent.
type ExpectedOutput struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Benchmark carries the market reference the surplus calculation compares
// against.
type Benchmark struct {
	Source      string  `json:"source,omitempty"`
	MarketPrice float64 `json:"market_price,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// ExpectedOutcome is the intent's declared benchmark expectation.
type ExpectedOutcome struct {
	ExpectedOutputs []ExpectedOutput `json:"expected_outputs,omitempty"`
	Benchmark       Benchmark        `json:"benchmark"`
}

// Metadata is free-form context attached to an intent.
type Metadata struct {
	Tags            []string `json:"tags,omitempty"`
	OriginalInput   string   `json:"original_input,omitempty"`
	InputConfidence float64  `json:"input_confidence,omitempty"`
}

// Intent is a user's declarative trade request. Immutable once submitted;
// the engine only reads it.
type Intent struct {
	ID              string          `json:"id"`
	Version         string          `json:"version"`
	UserAddress     string          `json:"user_address"`
	CreatedAt       time.Time       `json:"created_at"`
	IntentType      IntentType      `json:"intent_type"`
	Operation       Operation       `json:"operation"`
	Constraints     Constraints     `json:"constraints"`
	Preferences     Preferences     `json:"preferences"`
	Timing          Timing          `json:"timing"`
	ExpectedOutcome ExpectedOutcome `json:"expected_outcome"`
	Metadata        Metadata        `json:"metadata"`
}
