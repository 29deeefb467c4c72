package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "peliculas de accion", Fold("Películas de ACCIÓN"))
	assert.Equal(t, "espana", Fold("España"))
	assert.Equal(t, "", Fold(""))
}

func TestText_Has(t *testing.T) {
	text := NewText("Quiero comedias divertidas, ciencia-ficción y algo de Indiana Jones")

	assert.True(t, text.Has("comedia"), "plural suffix")
	assert.True(t, text.Has("divertid"), "gendered plural suffix")
	assert.True(t, text.Has("ciencia ficcion"), "phrase across punctuation")
	assert.False(t, text.Has("india"), "arbitrary suffix is not an inflection")
	assert.False(t, text.Has("accion"))
	assert.False(t, text.Has(""))
}

func TestLookupGenre(t *testing.T) {
	g, ok := LookupGenre("Ciencia Ficción")
	assert.True(t, ok)
	assert.Equal(t, []int{878, 10765}, g.IDs)

	g, ok = LookupGenre("Acción")
	assert.True(t, ok)
	assert.Equal(t, "action", g.SearchTerm)

	_, ok = LookupGenre("telenovela")
	assert.False(t, ok)
	assert.Equal(t, "telenovela", GenreSearchTerm("telenovela"))
}

func TestDetectGenres(t *testing.T) {
	assert.Equal(t, []string{"horror"}, DetectGenres(NewText("películas de terror de los 90")))
	assert.Equal(t, []string{"comedy", "romance"}, DetectGenres(NewText("a romantic comedy")))
	assert.Empty(t, DetectGenres(NewText("algo para ver hoy")))
}

func TestThemeKeywords(t *testing.T) {
	assert.Equal(t, []string{"horror", "scary", "thriller"}, ThemeKeywords(NewText("algo de terror"), 3))
	assert.Equal(t, []string{"horror", "scary"}, ThemeKeywords(NewText("terror y comedia"), 2))
	assert.Empty(t, ThemeKeywords(NewText("sorpréndeme"), 3))
}

func TestDetectFacets(t *testing.T) {
	text := NewText("series coreanas en Netflix o Disney+")
	assert.Equal(t, []string{"Netflix", "Disney+"}, DetectFacets(text, Platforms))
	assert.Equal(t, []string{"Korean"}, DetectFacets(text, Languages))
	assert.True(t, text.HasAny(SeriesTriggers))
	assert.False(t, text.HasAny(MovieTriggers))
}
