// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the insight-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/insight-engine/internal/secrets"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is the process-wide structured logger, built in PersistentPreRunE.
var logger *zap.Logger

// rootCmd is the base command for the insight-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "insight-engine",
	Short: "Pros/cons analysis for products and careers from blog reviews",
	Long: `insight-engine analyzes a subject (a product model or an occupation title)
by checking a findings cache and, on a miss, searching blog posts, fetching
their bodies, extracting pros and cons with a completion model, and
deduplicating near-identical findings.

The analyze subcommand runs the full pipeline; cache inspects and edits the
findings store; search runs the query stage alone for debugging.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./insight-engine.yaml or ~/.config/insight-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("insight-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "insight-engine"))
		}
	}

	viper.SetEnvPrefix("INSIGHT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles stage configuration from config file values and
// loaded secrets. Flags on individual commands override specific fields
// after this returns.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			ClientID:      loadedSecrets.Get("naver-client-id", viper.GetString("search.client_id")),
			ClientSecret:  loadedSecrets.Get("naver-client-secret", viper.GetString("search.client_secret")),
			Display:       viper.GetInt("search.display"),
			PerQueryFetch: viper.GetInt("search.per_query_fetch"),
			MinBodyChars:  viper.GetInt("search.min_body_chars"),
			FetchDelay:    viper.GetDuration("search.fetch_delay"),
			QueryDelay:    viper.GetDuration("search.query_delay"),
		},
		Extraction: types.ExtractionConfig{
			Model:      viper.GetString("extraction.model"),
			APIKey:     loadedSecrets.Get("openai-api-key", viper.GetString("extraction.api_key")),
			MaxRetries: viper.GetInt("extraction.max_retries"),
			Timeout:    viper.GetDuration("extraction.timeout"),
		},
		Cache: types.CacheConfig{
			DatabaseURL: loadedSecrets.Get("database-url", viper.GetString("cache.database_url")),
			SQLitePath:  viper.GetString("cache.sqlite_path"),
			Timeout:     viper.GetDuration("cache.timeout"),
		},
	}
}

// parseDomain validates the --domain flag value.
func parseDomain(s string) (types.Domain, error) {
	d := types.Domain(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown domain %q: use %q or %q", s, types.DomainProduct, types.DomainCareer)
	}
	return d, nil
}

const defaultCommandTimeout = 10 * time.Minute

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
