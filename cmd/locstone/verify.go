package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"locstone/internal/defs"
	"locstone/internal/localization"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] file",
	Short: "Verify a localization file against the master definitions",
	Long:  `Verify parses a localization file, reports identifiers unknown to the current definitions, and prints translation coverage`,
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().String("defs", "", "master definitions file (defaults to the manifest)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	configureColor(cmd)
	path := args[0]

	defsFlag, _ := cmd.Flags().GetString("defs")
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
	space := master.Space()

	var catalog localization.Catalog
	var unknown []localization.UnknownRecord
	warnColor := color.New(color.FgYellow)

	switch ext := filepath.Ext(path); ext {
	case ".yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		catalog, unknown, err = localization.ParseYAML(data, space)
		if err != nil {
			return err
		}
	case ".strings":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		catalog, err = localization.ParseStrings(data, space, color.Error)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	case ".db":
		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		table, err := localization.NewTable(buf)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		catalog = localization.NewCatalog(space.Len())
		for i := 0; i < table.Len(); i++ {
			id, msg := table.Entry(i)
			catalog.Set(id, string(msg))
		}
	default:
		return fmt.Errorf("unknown localization format: %s", ext)
	}

	for _, u := range unknown {
		warnColor.Fprintf(os.Stderr, "[!] unknown diagnostic: %s\n", u.Name)
	}

	localized := 0
	for _, msg := range catalog {
		if msg != "" {
			localized++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d diagnostics localized, %d unknown\n",
		path, localized, space.Len(), len(unknown))
	return nil
}
