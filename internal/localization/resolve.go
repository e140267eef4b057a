package localization

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"locstone/internal/diagid"
)

// Options configures producer construction during resolution.
type Options struct {
	// DebugNames appends " [<name>]" to every localized message.
	DebugNames bool

	// Warnings receives unknown-identifier notes from the flat-text
	// parser. Defaults to stderr.
	Warnings io.Writer
}

// ProducerFor picks the localization file for locale under dir and returns
// a producer bound to it, or nil when no localization is available (the
// caller then serves defaults directly, without a store).
//
// For each candidate locale the serialized table (<locale>.db) wins over
// the structured list (<locale>.yaml), which wins over the flat text
// (<locale>.strings). When the exact locale has no file, the parent tags
// of the locale are probed the same way (zh-Hans-CN falls back through
// zh-Hans to zh).
func ProducerFor(space *diagid.Space, locale, dir string, opts Options) Producer {
	for _, candidate := range localeChain(locale) {
		if p := producerAt(space, filepath.Join(dir, candidate), opts); p != nil {
			return p
		}
	}
	return nil
}

// producerAt probes the three formats for one locale file stem.
func producerAt(space *diagid.Space, stem string, opts Options) Producer {
	if path := stem + ".db"; fileExists(path) {
		buf, err := os.ReadFile(path)
		if err != nil {
			// Matches the reference behavior: an unreadable serialized
			// table does not fall through to the text formats.
			return nil
		}
		return NewSerializedProducer(space, buf, opts.DebugNames)
	}
	if path := stem + ".yaml"; fileExists(path) {
		return NewYAMLProducer(space, path, opts.DebugNames)
	}
	if path := stem + ".strings"; fileExists(path) {
		return NewStringsProducer(space, path, opts.DebugNames, opts.Warnings)
	}
	return nil
}

// localeChain returns the locale itself followed by its parent tags in
// fallback order. An unparseable locale yields just itself.
func localeChain(locale string) []string {
	chain := []string{locale}
	seen := map[string]bool{locale: true}

	tag, err := language.Parse(locale)
	if err != nil {
		return chain
	}
	for ; tag != language.Und; tag = tag.Parent() {
		name := tag.String()
		if !seen[name] {
			chain = append(chain, name)
			seen[name] = true
		}
	}
	return chain
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
