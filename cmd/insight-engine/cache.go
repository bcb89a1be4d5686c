// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/internal/cache"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and edit the findings cache",
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <subject>",
	Short: "Print the cached findings for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheGet,
}

var cachePutCmd = &cobra.Command{
	Use:   "put <subject>",
	Short: "Store findings for a subject from a YAML file",
	Long: `Put reads a YAML document with "pros" and "cons" string lists from the
file given with --file (or stdin with "-") and stores it for the subject,
replacing any previous entry. Useful for seeding demo data and for
repairing bad extractions by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: runCachePut,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge <subject>",
	Short: "Remove the cached findings for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runCachePurge,
}

func init() {
	cacheCmd.PersistentFlags().String("domain", string(types.DomainProduct), "subject category: product or career")
	cachePutCmd.Flags().String("file", "", "YAML file with pros/cons lists (\"-\" for stdin)")

	cacheCmd.AddCommand(cacheGetCmd, cachePutCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openStore opens the configured cache store for a cache subcommand.
func openStore(cmd *cobra.Command) (cache.Store, types.Domain, error) {
	domainFlag, _ := cmd.Flags().GetString("domain")
	domain, err := parseDomain(domainFlag)
	if err != nil {
		return nil, "", err
	}

	store, err := cache.Open(pipelineConfig().Cache, logger)
	if err != nil {
		return nil, "", fmt.Errorf("opening cache: %w", err)
	}
	return store, domain, nil
}

func runCacheGet(cmd *cobra.Command, args []string) error {
	store, domain, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Lookup(cmd.Context(), args[0], domain)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", args[0], err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no cached findings for %q", args[0])
	}

	formatText(os.Stdout, cache.ToResult(args[0], domain, records))
	return nil
}

// putInput is the YAML shape accepted by cache put.
type putInput struct {
	Pros []string `yaml:"pros"`
	Cons []string `yaml:"cons"`
}

func runCachePut(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return fmt.Errorf("provide a findings file with --file")
	}

	var data []byte
	var err error
	if file == "-" {
		data, err = os.ReadFile("/dev/stdin")
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("reading findings file: %w", err)
	}

	var input putInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parsing findings file: %w", err)
	}
	if len(input.Pros) == 0 && len(input.Cons) == 0 {
		return fmt.Errorf("findings file has no pros or cons")
	}

	store, domain, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records := cache.FromResult(types.FinalResult{Pros: input.Pros, Cons: input.Cons})
	if err := store.Save(cmd.Context(), args[0], domain, records); err != nil {
		return fmt.Errorf("storing findings for %q: %w", args[0], err)
	}

	fmt.Printf("stored %d findings for %q\n", len(records), args[0])
	return nil
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	store, domain, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), args[0], domain, nil); err != nil {
		return fmt.Errorf("purging %q: %w", args[0], err)
	}

	fmt.Printf("purged cached findings for %q\n", args[0])
	return nil
}
