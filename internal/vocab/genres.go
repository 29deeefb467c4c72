package vocab

// Genre maps the names users type (Spanish and English) to TMDB genre ids.
// Movie and TV ids differ for some genres, so both are listed.
type Genre struct {
	Label      string
	Names      []string
	IDs        []int
	SearchTerm string
}

var Genres = []Genre{
	{Label: "action", Names: []string{"accion", "action"}, IDs: []int{28, 10759}, SearchTerm: "action"},
	{Label: "adventure", Names: []string{"aventura", "adventure"}, IDs: []int{12, 10759}, SearchTerm: "adventure"},
	{Label: "comedy", Names: []string{"comedia", "comedy", "humor"}, IDs: []int{35}, SearchTerm: "comedy"},
	{Label: "drama", Names: []string{"drama", "dramatica"}, IDs: []int{18}, SearchTerm: "drama"},
	{Label: "horror", Names: []string{"terror", "horror", "miedo"}, IDs: []int{27}, SearchTerm: "horror"},
	{Label: "science fiction", Names: []string{"ciencia ficcion", "science fiction", "sci fi", "scifi"}, IDs: []int{878, 10765}, SearchTerm: "science fiction"},
	{Label: "fantasy", Names: []string{"fantasia", "fantasy", "fantastica"}, IDs: []int{14, 10765}, SearchTerm: "fantasy"},
	{Label: "thriller", Names: []string{"thriller", "suspense", "suspenso"}, IDs: []int{53}, SearchTerm: "thriller"},
	{Label: "romance", Names: []string{"romance", "romantica", "romantico", "romantic"}, IDs: []int{10749}, SearchTerm: "romance"},
	{Label: "animation", Names: []string{"animacion", "animation", "animada", "anime"}, IDs: []int{16}, SearchTerm: "animation"},
	{Label: "crime", Names: []string{"crimen", "crime", "policiaca", "policiaco"}, IDs: []int{80}, SearchTerm: "crime"},
	{Label: "documentary", Names: []string{"documental", "documentary"}, IDs: []int{99}, SearchTerm: "documentary"},
	{Label: "mystery", Names: []string{"misterio", "mystery"}, IDs: []int{9648}, SearchTerm: "mystery"},
	{Label: "family", Names: []string{"familia", "familiar", "family"}, IDs: []int{10751}, SearchTerm: "family"},
	{Label: "war", Names: []string{"guerra", "belica", "belico", "war"}, IDs: []int{10752, 10768}, SearchTerm: "war"},
	{Label: "western", Names: []string{"western", "vaqueros"}, IDs: []int{37}, SearchTerm: "western"},
	{Label: "history", Names: []string{"historica", "historico", "history", "historical"}, IDs: []int{36}, SearchTerm: "history"},
	{Label: "music", Names: []string{"musical", "musica", "music"}, IDs: []int{10402}, SearchTerm: "music"},
}

// LookupGenre finds the genre a stored profile genre name refers to.
func LookupGenre(name string) (Genre, bool) {
	key := NewText(name).Normalized()
	for _, g := range Genres {
		for _, n := range g.Names {
			if n == key {
				return g, true
			}
		}
	}
	return Genre{}, false
}

// GenreSearchTerm returns a search-friendly English term for a genre name,
// or the name itself when it is not in the table.
func GenreSearchTerm(name string) string {
	if g, ok := LookupGenre(name); ok {
		return g.SearchTerm
	}
	return name
}

// DetectGenres returns the labels of every genre mentioned in t, in table order.
func DetectGenres(t Text) []string {
	var labels []string
	for _, g := range Genres {
		if t.HasAny(g.Names) {
			labels = append(labels, g.Label)
		}
	}
	return labels
}
