package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"locstone/internal/defs"
	"locstone/internal/diagid"
	"locstone/internal/localization"
	"locstone/internal/observ"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [locale...]",
	Short: "Compile locale catalogs into serialized tables",
	Long:  `Compile parses each locale's structured-list catalog and emits the serialized <locale>.db lookup table`,
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("defs", "", "master definitions file (defaults to the manifest)")
	compileCmd.Flags().String("dir", "", "localization directory (defaults to the manifest)")
	compileCmd.Flags().Bool("force", false, "recompile even when the source catalog is unchanged")
	compileCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "maximum concurrent locale compilations")
}

type compileResult struct {
	locale  string
	skipped bool
	unknown []localization.UnknownRecord
}

func runCompile(cmd *cobra.Command, args []string) error {
	configureColor(cmd)
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	defsFlag, _ := cmd.Flags().GetString("defs")
	dirFlag, _ := cmd.Flags().GetString("dir")
	force, _ := cmd.Flags().GetBool("force")
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 1 {
		jobs = 1
	}

	defsPath, dir, err := resolveProject(defsFlag, dirFlag)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	loadPhase := timer.Begin("load definitions")
	master, err := defs.Load(defsPath)
	if err != nil {
		return err
	}
	timer.End(loadPhase, fmt.Sprintf("%d diagnostics", master.Len()))

	locales := args
	if len(locales) == 0 {
		locales = manifestLocales()
	}
	if len(locales) == 0 {
		locales, err = discoverLocales(dir)
		if err != nil {
			return err
		}
	}
	if len(locales) == 0 {
		return fmt.Errorf("no locale catalogs found in %s", dir)
	}

	cache, err := localization.OpenBuildCache("locstone")
	if err != nil {
		// A broken cache dir only costs incrementality.
		cache = nil
	}

	compilePhase := timer.Begin("compile locales")
	results := make([]compileResult, len(locales))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(jobs)
	for i, locale := range locales {
		i, locale := i, locale
		g.Go(func() error {
			res, err := compileLocale(master, dir, locale, cache, force)
			if err != nil {
				return fmt.Errorf("%s: %w", locale, err)
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()
	timer.End(compilePhase, fmt.Sprintf("%d locales", len(locales)))
	if err != nil {
		return err
	}

	if !quiet {
		printCompileResults(results)
	}
	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

// compileLocale parses <dir>/<locale>.yaml and emits <dir>/<locale>.db,
// unless the build cache shows the source unchanged.
func compileLocale(master *defs.Defs, dir, locale string, cache *localization.BuildCache, force bool) (compileResult, error) {
	src := filepath.Join(dir, locale+".yaml")
	out := filepath.Join(dir, locale+".db")

	data, err := os.ReadFile(src)
	if err != nil {
		return compileResult{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	digest := localization.HashBytes(data)
	if !force && cache.Fresh(locale, digest) {
		return compileResult{locale: locale, skipped: true}, nil
	}

	catalog, unknown, err := localization.ParseYAML(data, master.Space())
	if err != nil {
		return compileResult{}, err
	}

	writer := localization.NewWriter()
	for i, msg := range catalog {
		if msg != "" {
			writer.Insert(diagid.ID(i), msg)
		}
	}
	if err := writer.Emit(out); err != nil {
		return compileResult{}, err
	}

	if err := cache.Record(locale, digest, out); err != nil {
		return compileResult{}, fmt.Errorf("failed to update build cache: %w", err)
	}
	return compileResult{locale: locale, unknown: unknown}, nil
}

func printCompileResults(results []compileResult) {
	okColor := color.New(color.FgGreen)
	skipColor := color.New(color.Faint)
	warnColor := color.New(color.FgYellow)
	for _, res := range results {
		switch {
		case res.skipped:
			skipColor.Fprintf(os.Stderr, "  %s up to date\n", res.locale)
		default:
			okColor.Fprintf(os.Stderr, "  %s compiled\n", res.locale)
		}
		for _, u := range res.unknown {
			warnColor.Fprintf(os.Stderr, "    [!] unknown diagnostic: %s\n", u.Name)
		}
	}
}

// discoverLocales lists every *.yaml catalog under dir, sorted for
// deterministic output.
func discoverLocales(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var locales []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			locales = append(locales, name)
		}
	}
	sort.Strings(locales)
	return locales, nil
}
