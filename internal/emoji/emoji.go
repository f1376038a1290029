// Package emoji implements the text substitution pass applied to outgoing
// message text: a static table of literal shorthand tokens mapped to display
// glyphs.
package emoji

import (
	"sort"
	"strings"
)

// mapping is the full shorthand table. Keys are matched as literal
// substrings, never as regular expressions. Glyph values contain no token
// key as a substring, which is what makes Replace stable under re-runs;
// TestReplace_Stable guards that property against table edits.
var mapping = map[string]string{
	":)":          "😊",
	":-)":         "😊",
	":(":          "😞",
	":-(":         "😞",
	":D":          "😃",
	":-D":         "😃",
	";)":          "😉",
	";-)":         "😉",
	":P":          "😛",
	":-P":         "😛",
	":O":          "😮",
	":-O":         "😮",
	":*":          "😘",
	":-*":         "😘",
	"<3":          "❤️",
	"</3":         "💔",
	":/":          "😕",
	":-/":         "😕",
	":|":          "😐",
	":-|":         "😐",
	":'(":         "😢",
	":poop:":      "💩",
	":fire":       "🔥",
	":100":        "💯",
	":heart":      "❤️",
	":star":       "⭐",
	":clap":       "👏",
	":pray":       "🙏",
	":rocket":     "🚀",
	":thumbsup":   "👍",
	":thumbsdown": "👎",
	":ok":         "👌",
	":wave":       "👋",
}

// replacer tries tokens longest-first at every position, so a longer token
// (":-)") is never shadowed by a shorter one sharing its prefix (":").
var replacer = newReplacer()

func newReplacer() *strings.Replacer {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, mapping[k])
	}
	return strings.NewReplacer(pairs...)
}

// Replace substitutes every occurrence of every shorthand token in text with
// its glyph. It is a pure function; with the shipped table it is also stable:
// Replace(Replace(x)) == Replace(x).
func Replace(text string) string {
	return replacer.Replace(text)
}

// Tokens returns the shorthand tokens the engine recognizes, longest first.
// The CLI help uses this.
func Tokens() []string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
