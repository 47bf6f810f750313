package utilities

import "strings"

// LinesToArray splits textarea input into trimmed, non-empty lines.
// The job form submits requirement/responsibility/perk lists this way.
func LinesToArray(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
