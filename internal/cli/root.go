// Package cli implements the clip CLI commands.
package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clip-organization/clip-toolkit/internal/schema"
	"github.com/clip-organization/clip-toolkit/internal/store"
	"github.com/clip-organization/clip-toolkit/internal/toolkit"
)

var (
	schemaURL   string
	cacheDir    string
	localSchema string
	formatFlag  string
	verbose     bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "clip",
	Short: "Validate and inspect CLIP objects",
	Long:  "A CLI for the CLIP protocol: validate CLIP JSON documents against the official schema, manage the cached schema, and generate templates.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&schemaURL, "schema-url", "", "Schema URL (default: the official CLIP schema)")
	RootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Schema cache directory (default: $CLIP_CACHE_DIR or ~/.clip/schemas)")
	RootCmd.PersistentFlags().StringVar(&localSchema, "local-schema", "", "Local fallback schema file")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log acquisition and fetch details to stderr")
}

func getCacheDir() string {
	if cacheDir != "" {
		return cacheDir
	}
	return store.DefaultDir()
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newManager(logger *zap.Logger) *schema.Manager {
	st := store.NewFileStore(getCacheDir())
	return schema.NewManager(st, schema.Config{
		URL:       schemaURL,
		LocalPath: localSchema,
		Logger:    logger,
	})
}

func newToolkit(logger *zap.Logger) *toolkit.Toolkit {
	return toolkit.New(newManager(logger), toolkit.Config{Logger: logger})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
