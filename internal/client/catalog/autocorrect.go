package catalog

import (
	"regexp"
	"strings"
)

// typos maps lower-case misspellings to their corrections.
var typos = map[string]string{
	"teh":        "the",
	"recieved":   "received",
	"wierd":      "weird",
	"reccomend":  "recommend",
	"occured":    "occurred",
	"seperate":   "separate",
	"definately": "definitely",
	"alot":       "a lot",
	"untill":     "until",
	"begining":   "beginning",
}

var whitespace = regexp.MustCompile(`\s+`)

// AutoCorrect replaces known misspellings word by word and reports whether
// the text changed. Runs of whitespace collapse to a single space, so a
// query with only spacing changes also counts as corrected.
func AutoCorrect(text string) (string, bool) {
	words := whitespace.Split(text, -1)
	for i, w := range words {
		if fixed, ok := typos[strings.ToLower(w)]; ok {
			words[i] = fixed
		}
	}
	out := strings.Join(words, " ")
	return out, out != text
}
