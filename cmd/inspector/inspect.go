package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"holdingsScope/internal/chain"
	"holdingsScope/internal/config"
	"holdingsScope/internal/inspect"
	"holdingsScope/internal/model"
)

func runInspect(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Wallet == "" {
		return fmt.Errorf("wallet address is required")
	}
	wallet, err := parseAddress(cfg.Wallet)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := chain.NewClient(ctx, chain.Config{
		APIKey:      cfg.APIKey,
		Network:     cfg.Network,
		RPCURL:      cfg.RPCURL,
		HTTPTimeout: cfg.HTTPTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect service: %w", err)
	}
	defer client.Close()

	inspector := inspect.New(client, inspect.Config{ReceiptWorkers: cfg.ReceiptWorkers}, logger)

	logger.Info("inspection start",
		zap.String("wallet", wallet.Hex()),
		zap.String("network", cfg.Network),
	)

	out := cmd.OutOrStdout()

	native, err := inspector.NativeBalance(ctx, wallet)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Native balance: %s (%s base units, %d decimals)\n", native, native.Balance, native.Decimals)

	if cfg.TokenContract != "" {
		contract, err := parseAddress(cfg.TokenContract)
		if err != nil {
			return err
		}
		amount, err := inspector.TokenBalance(ctx, wallet, contract)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Token %s balance: %s\n", contract.Hex(), amount)
	}

	deployments, err := inspector.DeployedContracts(ctx, wallet)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Deployed contracts: %d\n", len(deployments))
	for _, deployment := range deployments {
		fmt.Fprintf(out, "  %s\n", deployment.Hash)
	}

	if cfg.NFTContract != "" {
		contract, err := parseAddress(cfg.NFTContract)
		if err != nil {
			return err
		}
		summary, err := inspector.NFTInventory(ctx, wallet, contract, buildInventoryFilter(cfg))
		if err != nil {
			return err
		}
		printInventory(out, contract, summary)
	}

	return nil
}

func buildInventoryFilter(cfg config.Config) model.InventoryFilter {
	filter := model.InventoryFilter{TokenID: cfg.NFTTokenID}
	if len(cfg.NFTTraits) == 0 {
		return filter
	}

	traits := make([]string, 0, len(cfg.NFTTraits))
	for trait := range cfg.NFTTraits {
		traits = append(traits, trait)
	}
	sort.Strings(traits)

	meta := model.NewMetadataRecord()
	for _, trait := range traits {
		meta.Attributes = append(meta.Attributes, model.Attribute{TraitType: trait, Value: cfg.NFTTraits[trait]})
	}
	filter.Metadata = meta
	return filter
}

func printInventory(out io.Writer, contract common.Address, summary model.InventorySummary) {
	fmt.Fprintf(out, "NFT inventory for %s: balance %d, %d matching\n", contract.Hex(), summary.Balance, len(summary.NFTData))
	for _, record := range summary.NFTData {
		name := ""
		if value, ok := record.Metadata.Get("name"); ok {
			name = fmt.Sprintf(" %v", value)
		}
		fmt.Fprintf(out, "  #%s (%s)%s\n", record.TokenID, record.TokenType, name)
	}
}

func parseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}
