package reputation

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// reputationOf(address) selector.
var reputationOfSelector = crypto.Keccak256([]byte("reputationOf(address)"))[:4]

// RegistryClient reads solver reputation from the on-chain solver
// registry contract.
type RegistryClient struct {
	client          *ethclient.Client
	contractAddress common.Address
}

// NewRegistryClient connects to the configured node.
func NewRegistryClient(rpcURL, contractAddr string) (*RegistryClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum node: %w", err)
	}

	return &RegistryClient{
		client:          client,
		contractAddress: common.HexToAddress(contractAddr),
	}, nil
}

// Reputation calls reputationOf(address) on the registry and scales the
// returned uint256 into [0,100].
func (rc *RegistryClient) Reputation(ctx context.Context, solverAddress string) (float64, error) {
	callData := make([]byte, 0, 36)
	callData = append(callData, reputationOfSelector...)
	callData = append(callData, common.LeftPadBytes(common.HexToAddress(solverAddress).Bytes(), 32)...)

	msg := ethereum.CallMsg{
		To:   &rc.contractAddress,
		Data: callData,
	}

	raw, err := rc.client.CallContract(ctx, msg, nil)
	if err != nil {
		return 0, fmt.Errorf("registry call failed for %s: %w", solverAddress, err)
	}
	if len(raw) == 0 {
		return 0, fmt.Errorf("registry returned no data for %s", solverAddress)
	}

	value := new(big.Int).SetBytes(raw)
	score, _ := new(big.Float).SetInt(value).Float64()
	return clampScore(score), nil
}

// HealthCheck verifies the node connection.
func (rc *RegistryClient) HealthCheck(ctx context.Context) error {
	_, err := rc.client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("registry health check failed: %w", err)
	}
	return nil
}

// Close closes the client connection.
func (rc *RegistryClient) Close() {
	if rc.client != nil {
		rc.client.Close()
	}
}
