package vocab

// Theme maps a feedback theme to direct catalog search keywords.
type Theme struct {
	Triggers []string
	Keywords []string
}

var Themes = []Theme{
	{Triggers: []string{"terror", "miedo", "horror", "scary", "susto"}, Keywords: []string{"horror", "scary", "thriller"}},
	{Triggers: []string{"comedia", "risa", "divertid", "gracios", "comedy", "funny"}, Keywords: []string{"comedy", "funny", "humor"}},
	{Triggers: []string{"romance", "romantic", "amor", "love"}, Keywords: []string{"romance", "love story", "romantic comedy"}},
	{Triggers: []string{"accion", "action", "explosiones"}, Keywords: []string{"action", "adventure", "heist"}},
	{Triggers: []string{"ciencia ficcion", "science fiction", "sci fi", "espacio", "space", "futuro"}, Keywords: []string{"science fiction", "space", "future"}},
	{Triggers: []string{"anime"}, Keywords: []string{"anime", "animation", "japan"}},
	{Triggers: []string{"crimen", "mafia", "detective", "crime", "policia"}, Keywords: []string{"crime", "mafia", "detective"}},
	{Triggers: []string{"superheroe", "superhero", "marvel"}, Keywords: []string{"superhero", "marvel", "dc comics"}},
	{Triggers: []string{"zombi", "zombie", "apocalipsis", "apocalypse"}, Keywords: []string{"zombie", "apocalypse", "survival"}},
	{Triggers: []string{"navidad", "christmas"}, Keywords: []string{"christmas", "holiday", "family"}},
	{Triggers: []string{"infantil", "ninos", "kids", "familia", "family"}, Keywords: []string{"family", "kids", "animation"}},
	{Triggers: []string{"guerra", "war", "belica"}, Keywords: []string{"war", "soldier", "battle"}},
	{Triggers: []string{"documental", "documentary"}, Keywords: []string{"documentary", "true story", "nature"}},
	{Triggers: []string{"misterio", "mystery", "intriga"}, Keywords: []string{"mystery", "detective", "whodunit"}},
	{Triggers: []string{"drama", "llorar", "triste", "sad"}, Keywords: []string{"drama", "emotional", "tearjerker"}},
}

// ThemeKeywords returns up to limit distinct search keywords for the themes
// mentioned in t, in table order.
func ThemeKeywords(t Text, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, theme := range Themes {
		if !t.HasAny(theme.Triggers) {
			continue
		}
		for _, kw := range theme.Keywords {
			if len(out) >= limit {
				return out
			}
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}
