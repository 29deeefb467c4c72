package prompt

import (
	"regexp"
	"strings"

	"movie-discovery-llm-recommender/internal/vocab"
)

const (
	minTitleLen = 2
	maxTitleLen = 100
)

var (
	reNumberBullet = regexp.MustCompile(`^\d{1,3}\s*[.)\-:]\s*`)
	reSymbolBullet = regexp.MustCompile(`^[-*•·]+\s*`)
	reTrailingYear = regexp.MustCompile(`\s*\((?:19|20)\d{2}\)$`)

	metaPrefixes = []string{
		"example", "respond", "format", "here are", "here is", "note:",
		"ejemplo", "responde", "formato", "aqui tienes", "aqui estan", "nota:",
		"cannot satisfy", "rejected", "titles:",
	}
	metaPhrases = []string{"per line", "por linea", "one title", "un titulo"}
	noneReplies = map[string]bool{"none": true, "ninguno": true, "ninguna": true, "n/a": true}

	quoteChars = "\"'`“”‘’«»"
)

// ParseTitles extracts candidate titles from generated text, one per line,
// in the order they appear. It never fails; unusable text yields nil.
func ParseTitles(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if title, ok := cleanLine(line); ok {
			out = append(out, title)
		}
	}
	return out
}

func cleanLine(line string) (string, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if s == "" {
		return "", false
	}
	s = reNumberBullet.ReplaceAllString(s, "")
	s = reSymbolBullet.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, quoteChars)
	s = reTrailingYear.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.Trim(s, quoteChars))

	if n := len([]rune(s)); n < minTitleLen || n > maxTitleLen {
		return "", false
	}
	if isMeta(s) {
		return "", false
	}
	return s, true
}

func isMeta(s string) bool {
	folded := vocab.Fold(s)
	if noneReplies[strings.TrimRight(folded, ".!")] {
		return true
	}
	for _, p := range metaPrefixes {
		if strings.HasPrefix(folded, p) {
			return true
		}
	}
	for _, p := range metaPhrases {
		if strings.Contains(folded, p) {
			return true
		}
	}
	return false
}
