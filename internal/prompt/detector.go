package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"movie-discovery-llm-recommender/internal/models"
	"movie-discovery-llm-recommender/internal/vocab"
)

// Constraints are the hard requirements recognized in user feedback.
type Constraints struct {
	Years     []string
	Periods   []string
	Genres    []string
	MediaType models.MediaType
	Platforms []string
	Languages []string
}

// Empty reports whether no constraint was recognized.
func (c Constraints) Empty() bool {
	return len(c.Years) == 0 && len(c.Periods) == 0 && len(c.Genres) == 0 &&
		c.MediaType == "" && len(c.Platforms) == 0 && len(c.Languages) == 0
}

// Detector recognizes constraints and objective-quality requests in free
// text. Implementations are language specific.
type Detector interface {
	Detect(feedback string) Constraints
	IsObjectiveQuery(text string) bool
}

// KeywordDetector matches Spanish and English keyword tables against
// accent-folded text.
type KeywordDetector struct{}

var (
	reRange       = regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|a|al|to|hasta|y)\s*((?:19|20)\d{2})\b`)
	reFullDecade  = regexp.MustCompile(`\b((?:19|20)\d)0'?s\b`)
	reShortDecade = regexp.MustCompile(`\b(?:los|las|anos|decada de los|decada del)\s+'?(\d)0'?s?\b`)
	reEnDecade    = regexp.MustCompile(`(?:^|\s)'?(\d)0'?s\b`)
	reYear        = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// Phrases that count a number after "los" as a list size, not a decade.
	listSizeWords = []string{"mejores", "primeros", "primeras", "titulos", "peliculas", "series"}

	objectivePatterns = regexp.MustCompile(strings.Join([]string{
		`de todos los tiempos`,
		`mejor(?:es)? de la historia`,
		`mas aclamad[ao]s?`,
		`obras? maestras?`,
		`imprescindibles?`,
		`clasicos? del cine`,
		`mejor valorad[ao]s?`,
		`mas valorad[ao]s?`,
		`mejores (?:peliculas|series)`,
		`best (?:movies|films|series|shows)? ?(?:of all time|ever)`,
		`all[ -]time`,
		`greatest`,
		`most acclaimed`,
		`masterpieces?`,
		`must[ -](?:see|watch)`,
		`top rated`,
		`highest rated`,
	}, "|"))
)

func (KeywordDetector) Detect(feedback string) Constraints {
	var c Constraints
	if strings.TrimSpace(feedback) == "" {
		return c
	}
	folded := vocab.Fold(feedback)
	text := vocab.NewText(feedback)

	c.Periods, folded = detectPeriods(folded)
	for _, m := range reYear.FindAllStringSubmatch(folded, -1) {
		c.Years = appendUnique(c.Years, m[1])
	}

	c.Genres = vocab.DetectGenres(text)
	movies := text.HasAny(vocab.MovieTriggers)
	series := text.HasAny(vocab.SeriesTriggers)
	switch {
	case movies && !series:
		c.MediaType = models.MediaMovie
	case series && !movies:
		c.MediaType = models.MediaSeries
	}
	c.Platforms = vocab.DetectFacets(text, vocab.Platforms)
	c.Languages = vocab.DetectFacets(text, vocab.Languages)
	return c
}

func (KeywordDetector) IsObjectiveQuery(text string) bool {
	return objectivePatterns.MatchString(vocab.NewText(text).Normalized())
}

// detectPeriods extracts year ranges and decades and returns the text with
// the matched spans blanked so they are not read again as single years.
func detectPeriods(folded string) ([]string, string) {
	var periods []string

	for _, m := range reRange.FindAllStringSubmatch(folded, -1) {
		periods = appendUnique(periods, m[1]+"-"+m[2])
	}
	folded = reRange.ReplaceAllString(folded, " ")

	for _, m := range reFullDecade.FindAllStringSubmatch(folded, -1) {
		start, _ := strconv.Atoi(m[1] + "0")
		periods = appendUnique(periods, decade(start))
	}
	folded = reFullDecade.ReplaceAllString(folded, " ")

	for _, idx := range reShortDecade.FindAllStringSubmatchIndex(folded, -1) {
		if followedByAny(folded[idx[1]:], listSizeWords) {
			continue
		}
		periods = appendUnique(periods, shortDecade(folded[idx[2]:idx[3]]))
	}
	for _, m := range reEnDecade.FindAllStringSubmatch(folded, -1) {
		periods = appendUnique(periods, shortDecade(m[1]))
	}
	return periods, folded
}

// shortDecade expands "9" to 1990-1999 and "1" to 2010-2019.
func shortDecade(digit string) string {
	d, _ := strconv.Atoi(digit)
	if d <= 2 {
		return decade(2000 + d*10)
	}
	return decade(1900 + d*10)
}

func decade(start int) string {
	return fmt.Sprintf("%d-%d", start, start+9)
}

func followedByAny(rest string, words []string) bool {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}
	for _, w := range words {
		if fields[0] == w {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
