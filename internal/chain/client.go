// Package chain adapts the external chain-indexing service behind the
// inspector's query surface.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"holdingsScope/internal/model"
)

const defaultHTTPTimeout = 30 * time.Second

// Responses larger than this are treated as malformed.
const maxRESTResponseBytes = 8 << 20

// Config selects the indexing-service endpoints for one inspection session.
type Config struct {
	APIKey  string
	Network string // e.g. eth-mainnet

	// RPCURL overrides the JSON-RPC endpoint built from Network and APIKey.
	RPCURL string
	// NFTBaseURL overrides the NFT REST base; used by tests.
	NFTBaseURL string

	// HTTPTimeout bounds NFT REST calls; JSON-RPC calls rely on the caller's
	// context.
	HTTPTimeout time.Duration
}

// Client wraps the service's JSON-RPC and NFT REST surfaces. Its lifetime is
// scoped to one inspection session.
type Client struct {
	rpcClient  *rpc.Client
	ethClient  *ethclient.Client
	httpClient *http.Client
	nftBaseURL string
	logger     *zap.Logger
}

// NewClient dials the service described by cfg.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rpcURL := cfg.RPCURL
	if rpcURL == "" {
		if cfg.APIKey == "" || cfg.Network == "" {
			return nil, fmt.Errorf("api key and network are required")
		}
		rpcURL = fmt.Sprintf("https://%s.g.alchemy.com/v2/%s", cfg.Network, cfg.APIKey)
	}

	nftBaseURL := cfg.NFTBaseURL
	if nftBaseURL == "" {
		nftBaseURL = fmt.Sprintf("https://%s.g.alchemy.com/nft/v3/%s", cfg.Network, cfg.APIKey)
	}

	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &Client{
		rpcClient:  rpcClient,
		ethClient:  ethclient.NewClient(rpcClient),
		httpClient: &http.Client{Timeout: timeout},
		nftBaseURL: nftBaseURL,
		logger:     logger,
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// TokenMetadata returns fungible-token metadata for a contract. Decimals may
// be nil in the response.
func (c *Client) TokenMetadata(ctx context.Context, contract common.Address) (model.TokenMetadata, error) {
	var meta model.TokenMetadata
	if err := c.rpcClient.CallContext(ctx, &meta, "alchemy_getTokenMetadata", contract); err != nil {
		return model.TokenMetadata{}, fmt.Errorf("token metadata %s: %w", contract.Hex(), err)
	}
	return meta, nil
}

// TokenBalances returns the wallet's balances for the given contracts.
func (c *Client) TokenBalances(ctx context.Context, owner common.Address, contracts []common.Address) ([]model.TokenBalance, error) {
	var resp struct {
		Address       common.Address       `json:"address"`
		TokenBalances []model.TokenBalance `json:"tokenBalances"`
	}
	if err := c.rpcClient.CallContext(ctx, &resp, "alchemy_getTokenBalances", owner, contracts); err != nil {
		return nil, fmt.Errorf("token balances %s: %w", owner.Hex(), err)
	}
	return resp.TokenBalances, nil
}

// NativeBalance returns the wallet's native-coin balance at the latest block.
func (c *Client) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	balance, err := c.ethClient.BalanceAt(ctx, owner, nil)
	if err != nil {
		return nil, fmt.Errorf("native balance %s: %w", owner.Hex(), err)
	}
	return balance, nil
}

// AssetTransfers returns one page of asset transfers matching the query.
func (c *Client) AssetTransfers(ctx context.Context, query model.TransferQuery) (model.TransferPage, error) {
	var page model.TransferPage
	if err := c.rpcClient.CallContext(ctx, &page, "alchemy_getAssetTransfers", query); err != nil {
		return model.TransferPage{}, fmt.Errorf("asset transfers: %w", err)
	}
	return page, nil
}

// TransactionReceipt returns the receipt for a transaction hash, or nil when
// the service does not know the transaction.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*model.Receipt, error) {
	var receipt *model.Receipt
	if err := c.rpcClient.CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash); err != nil {
		return nil, fmt.Errorf("transaction receipt %s: %w", hash.Hex(), err)
	}
	return receipt, nil
}

// NFTsForOwner returns one page of the wallet's NFTs for a contract,
// metadata included. pageKey is empty for the first page.
func (c *Client) NFTsForOwner(ctx context.Context, owner, contract common.Address, pageKey string) (model.OwnedNFTPage, error) {
	endpoint, err := url.Parse(c.nftBaseURL + "/getNFTsForOwner")
	if err != nil {
		return model.OwnedNFTPage{}, fmt.Errorf("nft endpoint: %w", err)
	}

	params := url.Values{}
	params.Set("owner", owner.Hex())
	params.Add("contractAddresses[]", contract.Hex())
	params.Set("withMetadata", "true")
	if pageKey != "" {
		params.Set("pageKey", pageKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return model.OwnedNFTPage{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.OwnedNFTPage{}, fmt.Errorf("nfts for owner %s: %w", owner.Hex(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRESTResponseBytes))
	if err != nil {
		return model.OwnedNFTPage{}, fmt.Errorf("read nft response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.OwnedNFTPage{}, fmt.Errorf("nfts for owner: status %d: %s", resp.StatusCode, snippet(body))
	}

	var page model.OwnedNFTPage
	if err := json.Unmarshal(body, &page); err != nil {
		return model.OwnedNFTPage{}, fmt.Errorf("decode nft response: %w", err)
	}

	c.logger.Debug("nft page fetched",
		zap.String("owner", owner.Hex()),
		zap.Int("nfts", len(page.OwnedNFTs)),
		zap.Bool("more", page.PageKey != ""),
	)
	return page, nil
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
