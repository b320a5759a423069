package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/clip-organization/clip-toolkit/internal/template"
)

func init() {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate a skeleton CLIP document",
		Run:   runTemplate,
	}

	cmd.Flags().StringP("type", "t", "Venue", "CLIP type: Venue, Device or SoftwareApp")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runTemplate(cmd *cobra.Command, args []string) {
	objType, _ := cmd.Flags().GetString("type")
	output, _ := cmd.Flags().GetString("output")

	doc, err := template.Generate(objType)
	if err != nil {
		exitErr("template", err)
	}

	b, _ := json.MarshalIndent(doc, "", "  ")
	if output == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(output, append(b, '\n'), 0o644); err != nil {
		exitErr("write template", err)
	}
	fmt.Printf("wrote %s template to %s\n", objType, output)
}
