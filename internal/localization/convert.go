package localization

import (
	"fmt"
	"io"
)

// The two template converters turn the master catalog (every identifier
// name plus its default text, in declaration order) into an editable file
// for translators. Their escaping rules are fixed by compatibility with
// existing localization files and are intentionally not uniform: the
// structured-list form escapes both `"` and `\`, the flat-text form
// escapes only `"`. Do not "fix" one to match the other.

// WriteYAMLTemplate emits the structured-list template: one record per
// identifier, CR-LF terminated message lines.
func WriteYAMLTemplate(w io.Writer, names, messages []string) error {
	if len(names) != len(messages) {
		return fmt.Errorf("mismatched master catalog: %d names, %d messages", len(names), len(messages))
	}
	for i, name := range names {
		if _, err := fmt.Fprintf(w, "- id: %s\n", name); err != nil {
			return err
		}
		escaped := make([]byte, 0, len(messages[i])+2)
		for j := 0; j < len(messages[i]); j++ {
			switch ch := messages[i][j]; ch {
			case '"', '\\':
				escaped = append(escaped, '\\', ch)
			default:
				escaped = append(escaped, ch)
			}
		}
		if _, err := fmt.Fprintf(w, "  msg: \"%s\"\r\n", escaped); err != nil {
			return err
		}
	}
	return nil
}

// WriteStringsTemplate emits the flat-text template: one
// "<id>" = "<msg>"; record per identifier, CR-LF terminated.
func WriteStringsTemplate(w io.Writer, names, messages []string) error {
	if len(names) != len(messages) {
		return fmt.Errorf("mismatched master catalog: %d names, %d messages", len(names), len(messages))
	}
	for i, name := range names {
		escaped := make([]byte, 0, len(messages[i])+2)
		for j := 0; j < len(messages[i]); j++ {
			if messages[i][j] == '"' {
				escaped = append(escaped, '\\')
			}
			escaped = append(escaped, messages[i][j])
		}
		if _, err := fmt.Fprintf(w, "\"%s\" = \"%s\";\r\n", name, escaped); err != nil {
			return err
		}
	}
	return nil
}
