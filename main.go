// Package main provides the bonus-tax command line tool and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bonus-tax-engine/internal/config"
	"bonus-tax-engine/internal/logger"
	"bonus-tax-engine/internal/schemeregistry"
)

var (
	cfg      *config.Config
	schemeID string
)

var rootCmd = &cobra.Command{
	Use:   "bonus-tax",
	Short: "Individual income tax calculator and salary/bonus split optimizer",
	Long: "bonus-tax computes annual individual income tax under a progressive bracket schedule " +
		"and finds the monthly salary / annual bonus split that minimises it.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		if schemeID == "" {
			schemeID = cfg.DefaultSchemeID
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemeID, "scheme", "", "Tax scheme id (default from DEFAULT_SCHEME, then cn-2019)")
}

func newRegistry() (*schemeregistry.Registry, error) {
	return schemeregistry.New(schemeregistry.Options{
		Files:     cfg.SchemeFiles,
		RemoteURL: cfg.SchemeRegistryURL,
	})
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
