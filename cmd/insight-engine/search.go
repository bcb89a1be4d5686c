// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/search"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <subject>",
	Short: "Run the search stage alone and list candidate documents",
	Long: `Search expands the subject through the domain's query templates, runs
them against the blog search API, and fetches document bodies, without
calling the completion model. Useful for checking what the extraction
stage would see.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("domain", string(types.DomainProduct), "subject category: product or career")
	searchCmd.Flags().Duration("timeout", 0, "overall deadline (default 10m)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	domainFlag, _ := cmd.Flags().GetString("domain")
	domain, err := parseDomain(domainFlag)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	fetcher := search.NewFetcher(&search.NaverProvider{}, pipelineConfig().Search, logger)
	docs := fetcher.Fetch(ctx, strings.TrimSpace(args[0]), domain, os.Stderr)

	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Printf("%-50s  %-8s  %s\n", "Title", "Date", "Body chars")
	fmt.Println(strings.Repeat("-", 75))
	for _, d := range docs {
		title := d.Title
		if len([]rune(title)) > 50 {
			title = string([]rune(title)[:47]) + "..."
		}
		fmt.Printf("%-50s  %-8s  %d\n", title, d.PostDate, len(d.RawBody))
	}
	return nil
}
