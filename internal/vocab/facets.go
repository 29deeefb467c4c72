package vocab

// Facet is a named value recognized by a list of trigger keywords.
type Facet struct {
	Label    string
	Triggers []string
}

var Platforms = []Facet{
	{Label: "Netflix", Triggers: []string{"netflix"}},
	{Label: "HBO Max", Triggers: []string{"hbo", "hbo max"}},
	{Label: "Disney+", Triggers: []string{"disney"}},
	{Label: "Prime Video", Triggers: []string{"prime video", "amazon prime", "amazon"}},
	{Label: "Apple TV+", Triggers: []string{"apple tv", "appletv"}},
	{Label: "Movistar Plus+", Triggers: []string{"movistar"}},
	{Label: "Filmin", Triggers: []string{"filmin"}},
	{Label: "SkyShowtime", Triggers: []string{"skyshowtime"}},
	{Label: "Paramount+", Triggers: []string{"paramount"}},
	{Label: "Hulu", Triggers: []string{"hulu"}},
	{Label: "Crunchyroll", Triggers: []string{"crunchyroll"}},
}

var Languages = []Facet{
	{Label: "Korean", Triggers: []string{"coreana", "coreano", "corea", "korean", "k drama", "kdrama"}},
	{Label: "Japanese", Triggers: []string{"japonesa", "japones", "japon", "japanese"}},
	{Label: "Spanish", Triggers: []string{"espanola", "espanol", "espana", "spanish", "castellano"}},
	{Label: "Mexican", Triggers: []string{"mexicana", "mexicano", "mexico", "mexican"}},
	{Label: "Argentine", Triggers: []string{"argentina", "argentino", "argentine"}},
	{Label: "French", Triggers: []string{"francesa", "frances", "francia", "french"}},
	{Label: "Italian", Triggers: []string{"italiana", "italiano", "italia", "italian"}},
	{Label: "German", Triggers: []string{"alemana", "aleman", "alemania", "german"}},
	{Label: "British", Triggers: []string{"britanica", "britanico", "inglesa", "british"}},
	{Label: "Indian", Triggers: []string{"india", "hindi", "bollywood", "indian"}},
	{Label: "Turkish", Triggers: []string{"turca", "turco", "turquia", "turkish"}},
	{Label: "Nordic", Triggers: []string{"nordica", "nordico", "escandinava", "nordic", "scandinavian"}},
	{Label: "Chinese", Triggers: []string{"china", "chino", "chinese", "mandarin"}},
	{Label: "Brazilian", Triggers: []string{"brasil", "brasilena", "brazilian"}},
}

var (
	MovieTriggers  = []string{"pelicula", "peliculas", "peli", "pelis", "movie", "movies", "film", "films", "largometraje", "cine"}
	SeriesTriggers = []string{"serie", "series", "show", "shows", "tv", "television", "temporada", "miniserie"}
)

// DetectFacets returns the labels of every facet mentioned in t, in table order.
func DetectFacets(t Text, facets []Facet) []string {
	var labels []string
	for _, f := range facets {
		if t.HasAny(f.Triggers) {
			labels = append(labels, f.Label)
		}
	}
	return labels
}
