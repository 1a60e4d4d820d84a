package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "inspector",
		Short:        "Wallet holdings inspector",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a wallet's on-chain holdings",
		RunE:  runInspect,
	}

	inspectCmd.Flags().String("api-key", "", "indexing service API key")
	inspectCmd.Flags().String("network", "eth-mainnet", "network name")
	inspectCmd.Flags().String("rpc", "", "JSON-RPC URL override")
	inspectCmd.Flags().String("wallet", "", "wallet address to inspect")
	inspectCmd.Flags().String("token-contract", "", "fungible-token contract address")
	inspectCmd.Flags().String("nft-contract", "", "NFT contract address")
	inspectCmd.Flags().String("nft-token-id", "", "exact NFT token id to match")
	inspectCmd.Flags().String("nft-traits", "", "NFT trait filters (comma-separated Type=Value)")
	inspectCmd.Flags().Int("receipt-workers", 8, "concurrent receipt fetches")
	inspectCmd.Flags().Duration("http-timeout", 30*time.Second, "NFT REST call timeout")
	inspectCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(inspectCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
