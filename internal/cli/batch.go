package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clip-organization/clip-toolkit/internal/fetcher"
)

func init() {
	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Validate every CLIP file in a directory",
		Args:  cobra.ExactArgs(1),
		Run:   runBatch,
	}

	cmd.Flags().BoolP("recursive", "r", true, "Recurse into subdirectories")

	RootCmd.AddCommand(cmd)
}

func runBatch(cmd *cobra.Command, args []string) {
	recursive, _ := cmd.Flags().GetBool("recursive")

	logger := newLogger()
	defer logger.Sync()

	ctx := cmd.Context()
	tk := newToolkit(logger)
	f := fetcher.New(fetcher.Config{Logger: logger})

	files, err := f.Discover(args[0], recursive)
	if err != nil {
		exitErr("discover", err)
	}
	if len(files) == 0 {
		fmt.Println("no CLIP files found")
		return
	}

	var reports []sourceReport
	validCount := 0
	for _, path := range files {
		doc, err := f.FetchFile(path)
		if err != nil {
			reports = append(reports, sourceReport{Source: path, Error: err.Error()})
			continue
		}
		res, err := tk.Validate(ctx, doc)
		if err != nil {
			exitErr("validate", err)
		}
		reports = append(reports, sourceReport{Source: path, Result: &res})
		if res.Valid {
			validCount++
		}
	}

	if formatFlag == "json" {
		printJSON(reports)
	} else {
		for _, r := range reports {
			printReport(r)
		}
		fmt.Printf("\n%d/%d valid\n", validCount, len(reports))
	}

	if validCount != len(reports) {
		os.Exit(1)
	}
}
