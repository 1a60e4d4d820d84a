// Package inspect orchestrates the wallet holdings inspection flows.
package inspect

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"holdingsScope/internal/match"
	"holdingsScope/internal/model"
	"holdingsScope/internal/paging"
)

// NativeDecimals is the native-coin precision assumed for every supported
// network. Chains whose native unit is not 18 decimals need this derived per
// network instead of hard-coded.
const NativeDecimals = 18

const defaultReceiptWorkers = 8

// transferCategoryExternal selects externally-owned-account transactions in
// an asset-transfer scan; contract creations only appear in this category.
const transferCategoryExternal = "external"

// ChainQuerier is the slice of the indexing service the inspector consumes.
type ChainQuerier interface {
	TokenMetadata(ctx context.Context, contract common.Address) (model.TokenMetadata, error)
	TokenBalances(ctx context.Context, owner common.Address, contracts []common.Address) ([]model.TokenBalance, error)
	NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error)
	AssetTransfers(ctx context.Context, query model.TransferQuery) (model.TransferPage, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*model.Receipt, error)
	NFTsForOwner(ctx context.Context, owner, contract common.Address, pageKey string) (model.OwnedNFTPage, error)
}

// Config holds runtime settings for the inspector.
type Config struct {
	// ReceiptWorkers caps the concurrent receipt fetches in the
	// deployment-history flow. Zero selects the default.
	ReceiptWorkers int
}

// Inspector runs the holdings inspection flows for one wallet session. It
// holds no state across calls; every flow builds its result from scratch.
type Inspector struct {
	chain          ChainQuerier
	logger         *zap.Logger
	receiptWorkers int
}

// New builds an Inspector with its dependencies.
func New(chain ChainQuerier, cfg Config, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.ReceiptWorkers
	if workers <= 0 {
		workers = defaultReceiptWorkers
	}
	return &Inspector{
		chain:          chain,
		logger:         logger,
		receiptWorkers: workers,
	}
}

// TokenBalance reports the wallet's balance for one fungible-token contract.
// A wallet that does not hold the token, or a token with unknown decimals,
// reports a zero amount rather than an error.
func (i *Inspector) TokenBalance(ctx context.Context, wallet, contract common.Address) (model.TokenAmount, error) {
	if i.chain == nil {
		return model.TokenAmount{}, fmt.Errorf("chain querier is nil")
	}

	meta, err := i.chain.TokenMetadata(ctx, contract)
	if err != nil {
		return model.TokenAmount{}, fmt.Errorf("token metadata: %w", err)
	}

	balances, err := i.chain.TokenBalances(ctx, wallet, []common.Address{contract})
	if err != nil {
		return model.TokenAmount{}, fmt.Errorf("token balances: %w", err)
	}

	var balance *big.Int
	for _, entry := range balances {
		if entry.ContractAddress == contract && entry.TokenBalance != nil {
			balance = entry.TokenBalance.ToInt()
			break
		}
	}

	if balance == nil || meta.Decimals == nil {
		i.logger.Info("token not held or decimals unknown",
			zap.String("wallet", wallet.Hex()),
			zap.String("contract", contract.Hex()),
		)
		return model.ZeroAmount(), nil
	}

	return model.TokenAmount{Balance: balance, Decimals: *meta.Decimals}, nil
}

// NativeBalance reports the wallet's native-coin balance at the latest block.
func (i *Inspector) NativeBalance(ctx context.Context, wallet common.Address) (model.TokenAmount, error) {
	if i.chain == nil {
		return model.TokenAmount{}, fmt.Errorf("chain querier is nil")
	}

	balance, err := i.chain.NativeBalance(ctx, wallet)
	if err != nil {
		return model.TokenAmount{}, fmt.Errorf("native balance: %w", err)
	}

	return model.TokenAmount{Balance: balance, Decimals: NativeDecimals}, nil
}

// DeployedContracts lists the wallet's contract-creation transactions from
// genesis to the latest block. Receipt fetches fan out over a bounded worker
// pool; the first failure fails the whole call. Results are placed by index,
// so the output order follows the filtered-transfer order, not completion
// order.
func (i *Inspector) DeployedContracts(ctx context.Context, wallet common.Address) ([]model.TransferRecord, error) {
	if i.chain == nil {
		return nil, fmt.Errorf("chain querier is nil")
	}

	transfers, err := paging.Drain(ctx, func(ctx context.Context, cursor string) (paging.Page[model.TransferRecord], error) {
		page, err := i.chain.AssetTransfers(ctx, model.TransferQuery{
			FromBlock:   "0x0",
			ToBlock:     "latest",
			FromAddress: wallet.Hex(),
			Category:    []string{transferCategoryExternal},
			PageKey:     cursor,
		})
		if err != nil {
			return paging.Page[model.TransferRecord]{}, err
		}
		return paging.Page[model.TransferRecord]{Items: page.Transfers, Cursor: page.PageKey}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain transfers: %w", err)
	}

	deployments := make([]model.TransferRecord, 0)
	for _, transfer := range transfers {
		if transfer.To == nil {
			deployments = append(deployments, transfer)
		}
	}

	i.logger.Info("outbound transfers drained",
		zap.String("wallet", wallet.Hex()),
		zap.Int("transfers", len(transfers)),
		zap.Int("deployments", len(deployments)),
	)

	results := make([]model.TransferRecord, len(deployments))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(i.receiptWorkers)
	for idx, deployment := range deployments {
		group.Go(func() error {
			receipt, err := i.chain.TransactionReceipt(groupCtx, common.HexToHash(deployment.Hash))
			if err != nil {
				return fmt.Errorf("receipt %s: %w", deployment.Hash, err)
			}
			if receipt == nil {
				return fmt.Errorf("receipt %s: not found", deployment.Hash)
			}
			results[idx] = model.TransferRecord{
				From: wallet.Hex(),
				Hash: receipt.TransactionHash.Hex(),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// NFTInventory collects the wallet's NFTs for one contract, filters them by
// the caller's constraint, and sums their reported balances. The metadata
// predicate only applies when both the NFT's metadata and the filter's
// metadata are present; an NFT without metadata passes a metadata filter.
func (i *Inspector) NFTInventory(ctx context.Context, wallet, contract common.Address, filter model.InventoryFilter) (model.InventorySummary, error) {
	if i.chain == nil {
		return model.InventorySummary{}, fmt.Errorf("chain querier is nil")
	}

	owned, err := paging.Drain(ctx, func(ctx context.Context, cursor string) (paging.Page[model.OwnedNFT], error) {
		page, err := i.chain.NFTsForOwner(ctx, wallet, contract, cursor)
		if err != nil {
			return paging.Page[model.OwnedNFT]{}, err
		}
		return paging.Page[model.OwnedNFT]{Items: page.OwnedNFTs, Cursor: page.PageKey}, nil
	})
	if err != nil {
		return model.InventorySummary{}, fmt.Errorf("drain nfts: %w", err)
	}

	summary := model.InventorySummary{NFTData: make([]model.NFTRecord, 0, len(owned))}
	for _, nft := range owned {
		if nft.Raw.Metadata != nil && filter.Metadata != nil && !match.Matches(nft.Raw.Metadata, filter.Metadata) {
			continue
		}
		if filter.TokenID != "" && filter.TokenID != nft.TokenID {
			continue
		}

		if count, ok := parseCount(nft.Balance); ok {
			summary.Balance += count
		} else {
			// The record still lands in NFTData; only its count is unusable.
			i.logger.Warn("nft balance is not a valid count",
				zap.String("token_id", nft.TokenID),
				zap.String("balance", nft.Balance),
			)
		}

		summary.NFTData = append(summary.NFTData, model.NFTRecord{
			TokenID:   nft.TokenID,
			TokenType: nft.TokenType,
			Metadata:  nft.Raw.Metadata,
		})
	}

	i.logger.Info("nft inventory collected",
		zap.String("wallet", wallet.Hex()),
		zap.String("contract", contract.Hex()),
		zap.Int("owned", len(owned)),
		zap.Int("matched", len(summary.NFTData)),
	)
	return summary, nil
}

// parseCount classifies a reported NFT balance as a usable count or not.
func parseCount(raw string) (int64, bool) {
	count, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}
