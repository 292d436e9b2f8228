package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dom/ascension-codex/internal/config"
	"github.com/dom/ascension-codex/internal/logger"
	"github.com/dom/ascension-codex/internal/repository/postgres"
	"github.com/dom/ascension-codex/internal/seed"
	"github.com/dom/ascension-codex/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogFile string

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load starter resonances, effects and wonders",
	SilenceUsage: true,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load a YAML catalog into the database",
	Long: `Find-or-creates every resonance and effect in the catalog and submits
each wonder through the same validation as the API. Wonders that already
exist by kind and name are left alone, so the command can be re-run.

Without --file the catalog built into the binary is used (SEED_FILE
overrides it).`,
	RunE: runCatalog,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse a YAML catalog without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := seed.Load(catalogFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "resonances: %d\neffects: %d\nwonders: %d\n",
			len(c.Resonances), len(c.Effects), len(c.Wonders))
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "catalog YAML file")
	validateCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "catalog YAML file")
	rootCmd.AddCommand(catalogCmd, validateCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	path := catalogFile
	if path == "" {
		path = cfg.SeedFile
	}
	c, err := seed.Load(path)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL, postgres.LogLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := services.Seed.Apply(ctx, c)
	if err != nil {
		return err
	}
	log.Info("seed complete", zap.String("file", path))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
