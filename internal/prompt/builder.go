package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"movie-discovery-llm-recommender/internal/models"
)

const (
	historyLimit    = 8
	lowRatingLimit  = 5
	wishlistLimit   = 5
	highRatingFloor = 4.0
	lowRatingCeil   = 3.0
)

// Input is everything the builder renders into a prompt. History slices are
// ordered oldest first; RecentRecommendations is ordered newest first.
type Input struct {
	Profile               models.UserProfile
	Seen                  []models.HistoryItem
	Favorites             []models.HistoryItem
	Ratings               []models.HistoryItem
	Wishlist              []models.HistoryItem
	RecentRecommendations []models.Recommendation
	Feedback              string
	Liked                 *models.CatalogItem
	Rejected              []string
	Count                 int
}

// Builder renders recommendation prompts. It holds no state beyond its
// detector, so equal inputs always produce equal prompts.
type Builder struct {
	detector Detector
}

// NewBuilder returns a builder using d, or the keyword detector when d is nil.
func NewBuilder(d Detector) *Builder {
	if d == nil {
		d = KeywordDetector{}
	}
	return &Builder{detector: d}
}

// Detector returns the constraint detector the builder uses.
func (b *Builder) Detector() Detector { return b.detector }

// Build renders the recommendation prompt.
func (b *Builder) Build(in Input) string {
	feedback := strings.TrimSpace(in.Feedback)
	var constraints Constraints
	if feedback != "" {
		constraints = b.detector.Detect(feedback)
	}

	var sections []string
	if feedback != "" {
		sections = append(sections, b.feedbackHeader(feedback, constraints, in.Count))
	} else {
		sections = append(sections, tasteHeader(in))
	}
	if in.Liked != nil && in.Liked.Title != "" {
		sections = append(sections, fmt.Sprintf("The user just liked %q. Recommend in that spirit.", in.Liked.Title))
	}
	if h := historySection(in); h != "" {
		sections = append(sections, h)
	}
	if len(in.Rejected) > 0 {
		sections = append(sections, fmt.Sprintf(
			"REJECTED: these were all recommended to the user before: %s. Give entirely different titles.",
			strings.Join(in.Rejected, ", ")))
	}
	sections = append(sections, rulesSection(in.Count, constraints), formatSection(in.Count))
	return strings.Join(sections, "\n\n")
}

// BuildRepick renders the prompt that asks the generator to choose, among
// titles already recommended before, the ones matching the feedback.
func (b *Builder) BuildRepick(feedback string, titles []string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The user asked for: %q.\n", strings.TrimSpace(feedback))
	fmt.Fprintf(&sb, "From the list below of titles recommended to them before, pick up to %d that best match the request.\n", count)
	sb.WriteString("Reply with the matching titles exactly as written, one per line, nothing else. ")
	sb.WriteString("If none match, reply with the single word NONE.\n\nTITLES:\n")
	for _, t := range titles {
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Builder) feedbackHeader(feedback string, c Constraints, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a personalized movie and series recommender. Generate %d titles for the request below.\n", count)
	fmt.Fprintf(&sb, "USER REQUEST (dominant constraint, overrides their usual taste): %q\n", feedback)
	sb.WriteString("Interpret the request literally. For example:\n")
	sb.WriteString("- \"comedy\" means only comedies\n")
	sb.WriteString("- \"90s movies\" means only movies released between 1990 and 1999\n")
	sb.WriteString("- \"Korean series\" means only series produced in South Korea\n")
	sb.WriteString("- \"on Netflix\" means only titles currently available on Netflix")

	if !c.Empty() {
		sb.WriteString("\n\nMUST MATCH EXACTLY:")
		for _, g := range c.Genres {
			sb.WriteString("\n- Genre: " + g)
		}
		for _, p := range c.Periods {
			sb.WriteString("\n- Release period: " + p)
		}
		for _, y := range c.Years {
			sb.WriteString("\n- Release year: " + y)
		}
		switch c.MediaType {
		case models.MediaMovie:
			sb.WriteString("\n- Type: movies only")
		case models.MediaSeries:
			sb.WriteString("\n- Type: series only")
		}
		for _, p := range c.Platforms {
			sb.WriteString("\n- Available on: " + p)
		}
		for _, l := range c.Languages {
			sb.WriteString("\n- Language/region: " + l)
		}
		fmt.Fprintf(&sb, "\nIf you cannot find %d titles that satisfy ALL of these, write CANNOT SATISFY on its own line instead of guessing.", count)
	} else if b.detector.IsObjectiveQuery(feedback) {
		sb.WriteString("\n\nThis is an objective quality request: favor universally acclaimed, canonical titles over personal taste.")
	}
	return sb.String()
}

func tasteHeader(in Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a movie and series recommender. Recommend exactly %d titles the user has NOT seen, favorited, wishlisted or been recommended recently.", in.Count)

	var taste []string
	if len(in.Profile.FavoriteGenres) > 0 {
		taste = append(taste, "- Favorite genres: "+strings.Join(in.Profile.FavoriteGenres, ", "))
	}
	if media := strings.TrimSpace(in.Profile.FavoriteMedia); media != "" {
		taste = append(taste, "- In their own words: "+media)
	}
	if len(in.Ratings) > 0 {
		avg := AverageRating(in.Ratings)
		taste = append(taste, fmt.Sprintf("- Rating standards: %s (average %.1f/5)", ratingStandard(avg), avg))
	}
	if len(in.Favorites) > 0 {
		lean := "balanced mix of movies and series"
		switch PreferredMediaType(in.Favorites) {
		case models.MediaMovie:
			lean = "leans toward movies"
		case models.MediaSeries:
			lean = "leans toward series"
		}
		taste = append(taste, "- Media preference: "+lean)
	}
	if len(taste) > 0 {
		sb.WriteString("\n\nTASTE PROFILE:\n")
		sb.WriteString(strings.Join(taste, "\n"))
	}
	return sb.String()
}

func historySection(in Input) string {
	var high, low []string
	for _, r := range in.Ratings {
		title := r.Title()
		if title == "" {
			continue
		}
		label := fmt.Sprintf("%s (%s/5)", title, strconv.FormatFloat(r.Rating, 'f', -1, 64))
		switch {
		case r.Rating >= highRatingFloor:
			high = append(high, label)
		case r.Rating <= lowRatingCeil:
			low = append(low, label)
		}
	}

	var recent []string
	for _, r := range in.RecentRecommendations {
		if r.Item != nil && r.Item.Title != "" {
			recent = append(recent, r.Item.Title)
		}
	}

	var lines []string
	add := func(label string, titles []string) {
		if len(titles) > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, strings.Join(titles, ", ")))
		}
	}
	add("Rated highly", last(high, historyLimit))
	add("Rated low, avoid similar", last(low, lowRatingLimit))
	add("Favorites", last(titles(in.Favorites), historyLimit))
	add("Wishlist, already planned so do not recommend", last(titles(in.Wishlist), wishlistLimit))
	add("Recently seen", last(titles(in.Seen), historyLimit))
	add("Recently recommended, do not repeat", first(recent, historyLimit))
	if len(lines) == 0 {
		return ""
	}
	return "HISTORY:\n" + strings.Join(lines, "\n")
}

func rulesSection(count int, c Constraints) string {
	rules := []string{
		fmt.Sprintf("- Return exactly %d distinct titles.", count),
		"- Exclude anything already seen, favorited, wishlisted or recently recommended.",
		"- Vary genre and era, and mix mainstream hits with hidden gems.",
	}
	switch c.MediaType {
	case models.MediaMovie:
		rules = append(rules, "- Only movies, as requested.")
	case models.MediaSeries:
		rules = append(rules, "- Only series, as requested.")
	default:
		rules = append(rules, "- Mix movies and series.")
	}
	return "RULES:\n" + strings.Join(rules, "\n")
}

func formatSection(count int) string {
	return fmt.Sprintf(`OUTPUT FORMAT: exactly %d lines, one title per line, no numbering, no descriptions, no extra text.
Correct:
Inception
The Wire
Incorrect:
1. Inception (2010) - a mind-bending heist thriller`, count)
}

func titles(items []models.HistoryItem) []string {
	var out []string
	for _, it := range items {
		if t := it.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func last(list []string, n int) []string {
	if len(list) > n {
		return list[len(list)-n:]
	}
	return list
}

func first(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
