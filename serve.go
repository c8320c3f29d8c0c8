package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"bonus-tax-engine/internal/handler"
	"bonus-tax-engine/internal/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Serves POST /calculate, the bonus_min and tax_result_min spreadsheet functions and the scheme catalogue.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default from PORT, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := servePort
	if port == "" {
		port = cfg.Port
	}

	registry, err := newRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tax schemes: %w", err)
	}
	if _, err := registry.Get(cmd.Context(), schemeID); err != nil {
		return fmt.Errorf("default scheme: %w", err)
	}

	h := handler.New(registry, schemeID)

	logger.L.Info("bonus tax engine starting", "port", port, "default_scheme", schemeID, "schemes", registry.IDs())
	if err := fasthttp.ListenAndServe(":"+port, h.Router()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
