package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/config"
	"github.com/apex-supplements/store-api/internal/repository"
	"github.com/apex-supplements/store-api/internal/service"
)

var (
	checkCartFile    string
	checkCatalogFile string
)

var checkCmd = &cobra.Command{
	Use:   "check --cart <file>",
	Short: "Validate a cart file against the catalog",
	Long: `Re-prices a cart offline and prints the order summary as JSON.
The file holds either a bare array of lines or a {"credential", "cart"} request body.
A bare array is checked with the configured token. Exits non-zero when the cart is rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		catalogFile := checkCatalogFile
		if catalogFile == "" {
			catalogFile = cfg.Catalog.File
		}
		return runCheck(cmd.Context(), cmd.OutOrStdout(), checkCartFile, catalogFile, cfg.Auth.Token)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkCartFile, "cart", "", "cart JSON file")
	checkCmd.Flags().StringVar(&checkCatalogFile, "catalog", "", "catalog file (defaults to CATALOG_FILE)")
	_ = checkCmd.MarkFlagRequired("cart")
}

type checkRequest struct {
	Credential *string         `json:"credential"`
	Cart       json.RawMessage `json:"cart"`
}

func runCheck(ctx context.Context, out io.Writer, cartFile, catalogFile, token string) error {
	data, err := os.ReadFile(cartFile)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}

	credential, cart := token, json.RawMessage(data)
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var req checkRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return fmt.Errorf("decode cart request: %w", err)
		}
		cart = req.Cart
		if req.Credential != nil {
			credential = *req.Credential
		}
	}

	svc := service.NewCartService(repository.NewFileCatalogRepository(catalogFile), auth.NewStaticToken(token))
	summary, err := svc.ValidateCart(ctx, credential, cart)
	if err != nil {
		return fmt.Errorf("cart rejected (%s): %w", service.Classify(err), err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
