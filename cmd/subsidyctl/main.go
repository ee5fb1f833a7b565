package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/config"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/internal/store"
	"subsidy-dashboard/internal/timeutil"
	"subsidy-dashboard/internal/tui"
)

// app holds the global flags and the configuration they resolve to.
type app struct {
	cfgFile string
	apiURL  string
	token   string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "subsidyctl",
		Short: "Operator CLI for the fertilizer and LPG subsidy dashboard",
		Long: `subsidyctl lists recipients, merchants and transactions from the subsidy API,
approves or rejects pending transactions and opens an interactive terminal dashboard.

The upstream API is read from API_BASE_URL, the config file or --api-url.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "configs/config.yaml", "config file")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "upstream API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.token, "token", "", "bearer token forwarded to the upstream API")

	root.AddCommand(a.recipientsCmd())
	root.AddCommand(a.merchantsCmd())
	root.AddCommand(a.transactionsCmd())
	root.AddCommand(a.browseCmd())
	root.AddCommand(a.tokenCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// Load .env file if exists
	_ = godotenv.Load()

	if a.apiURL != "" {
		if err := os.Setenv("API_BASE_URL", a.apiURL); err != nil {
			return fmt.Errorf("set api url: %w", err)
		}
	}
	cfg, err := config.LoadFile(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := timeutil.SetLocation(cfg.Timezone); err != nil {
		log.Printf("[Config] Unknown timezone %q: %v", cfg.Timezone, err)
	}
	a.cfg = cfg

	if a.token != "" {
		cmd.SetContext(api.WithToken(cmd.Context(), a.token))
	}
	return nil
}

// services wires a fresh store set to the configured upstream.
func (a *app) services() (tui.Services, error) {
	client, err := api.NewClient(a.cfg.API.BaseURL, a.cfg.APITimeout())
	if err != nil {
		return tui.Services{}, err
	}
	stores := store.NewSet(client, store.Options{PageSize: a.cfg.API.PageSize})
	return tui.Services{
		Recipients:   services.NewRecipientService(stores.Recipients),
		Merchants:    services.NewMerchantService(stores.Merchants, nil),
		Transactions: services.NewTransactionService(stores.Transactions),
	}, nil
}
