package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clip-organization/clip-toolkit/internal/toolkit"
)

func init() {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the cached CLIP schema",
	}

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "fetch",
		Short: "Force-refresh the schema from its URL",
		Run:   runSchemaFetch,
	})
	schemaCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the cached schema's version and age",
		Run:   runSchemaInfo,
	})
	schemaCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the cached schema",
		Run:   runSchemaClear,
	})

	RootCmd.AddCommand(schemaCmd)
}

func runSchemaFetch(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	mgr := newManager(logger)
	rec, err := mgr.Refresh(cmd.Context())
	if err != nil {
		exitErr("fetch schema", err)
	}

	if formatFlag == "json" {
		printJSON(map[string]any{
			"version":   rec.Version,
			"origin":    rec.Origin,
			"fetchedAt": rec.FetchedAt.UTC().Format(time.RFC3339),
		})
		return
	}
	fmt.Printf("fetched schema %s (cached in %s)\n", rec.Version, getCacheDir())
}

func runSchemaInfo(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	mgr := newManager(logger)
	rec, err := mgr.ReadCache()
	if err != nil {
		exitErr("schema info", fmt.Errorf("no cached schema (run \"clip schema fetch\"): %w", err))
	}

	age := time.Since(rec.FetchedAt).Round(time.Second)
	stale := mgr.IsStale(toolkit.DefaultMaxSchemaAge)

	if formatFlag == "json" {
		printJSON(map[string]any{
			"version":   rec.Version,
			"fetchedAt": rec.FetchedAt.UTC().Format(time.RFC3339),
			"age":       age.String(),
			"stale":     stale,
			"cacheDir":  getCacheDir(),
		})
		return
	}
	fmt.Printf("version:   %s\n", rec.Version)
	fmt.Printf("fetched:   %s (%s ago)\n", rec.FetchedAt.UTC().Format(time.RFC3339), age)
	fmt.Printf("stale:     %v\n", stale)
	fmt.Printf("cache dir: %s\n", getCacheDir())
}

func runSchemaClear(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	if err := newManager(logger).ClearCache(); err != nil {
		exitErr("clear schema cache", err)
	}
	fmt.Println("schema cache cleared")
}
