package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clip-organization/clip-toolkit/internal/fetcher"
	"github.com/clip-organization/clip-toolkit/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate [source]...",
		Short: "Validate CLIP documents",
		Long:  "Validate one or more CLIP documents from file paths or URLs. With no arguments, reads a single document from stdin.",
		Run:   runValidate,
	}

	RootCmd.AddCommand(cmd)
}

// sourceReport pairs a source with its validation outcome for output.
type sourceReport struct {
	Source string                  `json:"source"`
	Result *model.ValidationResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	ctx := cmd.Context()
	tk := newToolkit(logger)
	f := fetcher.New(fetcher.Config{Logger: logger})

	var reports []sourceReport
	anyInvalid := false

	if len(args) == 0 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			exitErr("validate", fmt.Errorf("no sources given and nothing on stdin"))
		}
		doc, err := f.FetchReader(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		res, err := tk.Validate(ctx, doc)
		if err != nil {
			exitErr("validate", err)
		}
		reports = append(reports, sourceReport{Source: "stdin", Result: &res})
		anyInvalid = !res.Valid
	}

	for _, src := range args {
		doc, err := f.Fetch(ctx, src)
		if err != nil {
			reports = append(reports, sourceReport{Source: src, Error: err.Error()})
			anyInvalid = true
			continue
		}
		res, err := tk.Validate(ctx, doc)
		if err != nil {
			// No schema from any source: a configuration problem, not a
			// data-quality one. Fail loudly.
			exitErr("validate", err)
		}
		reports = append(reports, sourceReport{Source: src, Result: &res})
		if !res.Valid {
			anyInvalid = true
		}
	}

	if formatFlag == "json" {
		printJSON(reports)
	} else {
		for _, r := range reports {
			printReport(r)
		}
	}

	if anyInvalid {
		os.Exit(1)
	}
}

func printReport(r sourceReport) {
	if r.Error != "" {
		fmt.Printf("✗ %s: %s\n", r.Source, r.Error)
		return
	}
	res := r.Result
	if res.Valid {
		fmt.Printf("✓ %s is valid\n", r.Source)
	} else {
		fmt.Printf("✗ %s is invalid\n", r.Source)
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("  %s: %s\n", d.Field, d.Message)
		if d.Suggestion != "" {
			fmt.Printf("    hint: %s\n", d.Suggestion)
		}
	}
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	fmt.Printf("  type: %s  completeness: %d%%  size: %dB\n",
		res.Stats.Type, res.Stats.Completeness, res.Stats.EstimatedSizeBytes)
}
