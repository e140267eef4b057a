package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"locstone/internal/defs"
	"locstone/internal/diagid"
	"locstone/internal/localization"
)

var listCmd = &cobra.Command{
	Use:   "list [flags] locale",
	Short: "List every available translation for a locale",
	Long:  `List resolves the best localization file for a locale and prints each translated diagnostic in identifier order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("defs", "", "master definitions file (defaults to the manifest)")
	listCmd.Flags().String("dir", "", "localization directory (defaults to the manifest)")
	listCmd.Flags().Bool("debug-names", false, "append [<id-name>] to every message")
}

func runList(cmd *cobra.Command, args []string) error {
	configureColor(cmd)
	locale := args[0]

	defsFlag, _ := cmd.Flags().GetString("defs")
	dirFlag, _ := cmd.Flags().GetString("dir")
	debugNames, _ := cmd.Flags().GetBool("debug-names")

	defsPath, dir, err := resolveProject(defsFlag, dirFlag)
	if err != nil {
		return err
	}
	master, err := defs.Load(defsPath)
	if err != nil {
		return err
	}
	space := master.Space()

	producer := localization.ProducerFor(space, locale, dir, localization.Options{
		DebugNames: debugNames,
	})
	if producer == nil {
		return fmt.Errorf("no localization available for %s in %s", locale, dir)
	}

	out := cmd.OutOrStdout()
	producer.ForEachAvailable(func(id diagid.ID, msg string) {
		fmt.Fprintf(out, "%s\t%s\n", space.Name(id), msg)
	})
	if producer.State() == localization.FailedInitialization {
		return fmt.Errorf("failed to load localization for %s", locale)
	}
	return nil
}
