package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"locstone/internal/defs"
	"locstone/internal/localization"
)

var templateCmd = &cobra.Command{
	Use:   "template [flags]",
	Short: "Emit an editable translation template from the master definitions",
	Long:  `Template converts the master definitions (default English text) into a structured-list or flat-text file for translators`,
	RunE:  runTemplate,
}

func init() {
	templateCmd.Flags().String("defs", "", "master definitions file (defaults to the manifest)")
	templateCmd.Flags().String("format", "yaml", "template format (yaml|strings)")
	templateCmd.Flags().String("out", "", "output file (defaults to stdout)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	defsFlag, _ := cmd.Flags().GetString("defs")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	defsPath := defsFlag
	if defsPath == "" {
		manifest, ok, err := loadManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s", noManifestMessage)
		}
		defsPath = manifest.defsPath()
	}

	master, err := defs.Load(defsPath)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "yaml":
		return localization.WriteYAMLTemplate(out, master.Names(), master.Messages())
	case "strings":
		return localization.WriteStringsTemplate(out, master.Names(), master.Messages())
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
