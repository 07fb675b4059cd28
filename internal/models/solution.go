package models

import "time"

// SerializedTransaction is the solver's prepared transaction. The engine
// never builds, signs, or inspects it beyond structural checks.
type SerializedTransaction struct {
	Data string `json:"data"`
	Hash string `json:"hash"`
}

// PromisedOutput is an output amount the solver commits to deliver.
type PromisedOutput struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// ProtocolFee is an optional fee the solution pays to a protocol on the way.
type ProtocolFee struct {
	Protocol string `json:"protocol"`
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
}

// Strategy summarizes how the solution routes the trade.
type Strategy struct {
	Protocols []string `json:"protocols,omitempty"`
	Hops      int      `json:"hops"`
	Path      string   `json:"path,omitempty"`
	Technique string   `json:"technique,omitempty"`
}

// Solution is one solver's candidate for one intent. Immutable once
// submitted; derived figures live in the engine's output, never here.
type Solution struct {
	ID                   string                `json:"id"`
	IntentID             string                `json:"intent_id"`
	SolverAddress        string                `json:"solver_address"`
	SubmittedAt          time.Time             `json:"submitted_at"`
	Transaction          SerializedTransaction `json:"transaction"`
	PromisedOutputs      []PromisedOutput      `json:"promised_outputs"`
	EstimatedGas         uint64                `json:"estimated_gas"`
	EstimatedSlippageBps int                   `json:"estimated_slippage_bps"`
	ProtocolFees         []ProtocolFee         `json:"protocol_fees,omitempty"`
	Strategy             Strategy              `json:"strategy"`
}
