package model

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TokenMetadata describes a fungible-token contract. Decimals is nil when
// the service does not know the token's precision.
type TokenMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals *int   `json:"decimals"`
	Logo     string `json:"logo"`
}

// TokenBalance is one entry of a token-balance response. TokenBalance is the
// hex-encoded base-unit balance; nil when the service reports none.
type TokenBalance struct {
	ContractAddress common.Address `json:"contractAddress"`
	TokenBalance    *hexutil.Big   `json:"tokenBalance"`
}

// Receipt is the subset of a transaction receipt the inspector consumes.
type Receipt struct {
	TransactionHash common.Hash     `json:"transactionHash"`
	ContractAddress *common.Address `json:"contractAddress"`
	BlockNumber     *hexutil.Big    `json:"blockNumber"`
	Status          hexutil.Uint64  `json:"status"`
}
