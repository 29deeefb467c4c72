package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery-llm-recommender/internal/config"
	"movie-discovery-llm-recommender/internal/models"
)

const searchBody = `{"page":1,"results":[
 {"id":27205,"media_type":"movie","title":"Origen","overview":"Sueños","poster_path":"/inception.jpg","release_date":"2010-07-15","genre_ids":[28,878],"popularity":90.5,"vote_average":8.4},
 {"id":525,"media_type":"person","name":"Christopher Nolan"},
 {"id":1399,"media_type":"tv","name":"Juego de tronos","first_air_date":"2011-04-17","genre_ids":[10765,18],"popularity":300,"vote_average":8.5}
]}`

const trendingBody = `{"page":1,"results":[
 {"id":1,"media_type":"movie","title":"Uno"},
 {"id":2,"media_type":"tv","name":"Dos"},
 {"id":3,"media_type":"person","name":"Tres"},
 {"id":4,"media_type":"movie","title":"Cuatro"}
]}`

const detailBody = `{
 "videos":{"results":[{"key":"teaser1","site":"YouTube","type":"Teaser"},{"key":"YoHD9XEInc0","site":"YouTube","type":"Trailer"}]},
 "watch/providers":{"results":{"ES":{"flatrate":[{"provider_name":"Netflix"},{"provider_name":"Movistar Plus+"}]},"US":{"flatrate":[{"provider_name":"Max"}]}}}
}`

type tmdbServer struct {
	*httptest.Server
	searches atomic.Int32
	details  atomic.Int32
	lastPath atomic.Value
}

func newTMDBServer(t *testing.T) *tmdbServer {
	s := &tmdbServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search/multi":
			s.searches.Add(1)
			if r.URL.Query().Get("query") == "nothing" {
				_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
				return
			}
			_, _ = w.Write([]byte(searchBody))
		case "/trending/all/week":
			_, _ = w.Write([]byte(trendingBody))
		case "/movie/27205", "/tv/1399":
			s.details.Add(1)
			s.lastPath.Store(r.URL.Path + "?" + r.URL.Query().Get("append_to_response"))
			_, _ = w.Write([]byte(detailBody))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_message":"not found"}`))
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func TestClient_Search(t *testing.T) {
	srv := newTMDBServer(t)
	c := NewClient("test-key", srv.URL, "es-ES", "ES")

	items, err := c.Search(context.Background(), "origen")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, models.CatalogItem{
		ID:          27205,
		Title:       "Origen",
		Overview:    "Sueños",
		PosterURL:   "https://image.tmdb.org/t/p/w500/inception.jpg",
		ReleaseDate: "2010-07-15",
		GenreIDs:    []int{28, 878},
		Popularity:  90.5,
		VoteAverage: 8.4,
		MediaType:   models.MediaMovie,
	}, items[0])
	assert.Equal(t, "Juego de tronos", items[1].Title)
	assert.Equal(t, models.MediaSeries, items[1].MediaType)
	assert.Equal(t, "2011-04-17", items[1].ReleaseDate)
	assert.Empty(t, items[1].PosterURL)
}

func TestClient_Trending(t *testing.T) {
	srv := newTMDBServer(t)
	c := NewClient("test-key", srv.URL, "es-ES", "ES")

	items, err := c.Trending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.TrendingItem{
		{ID: 1, Title: "Uno", MediaType: models.MediaMovie},
		{ID: 2, Title: "Dos", MediaType: models.MediaSeries},
		{ID: 4, Title: "Cuatro", MediaType: models.MediaMovie},
	}, items)
}

func TestClient_Details(t *testing.T) {
	srv := newTMDBServer(t)
	c := NewClient("test-key", srv.URL, "es-ES", "ES")

	d, err := c.Details(context.Background(), 1399, models.MediaSeries)
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=YoHD9XEInc0", d.TrailerURL)
	assert.Equal(t, []string{"Netflix", "Movistar Plus+"}, d.Platforms)
	assert.Equal(t, "/tv/1399?videos,watch/providers", srv.lastPath.Load())
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := newTMDBServer(t)
	c := NewClient("wrong-key", srv.URL, "es-ES", "ES")

	_, err := c.Search(context.Background(), "origen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func testCatalog(srv *tmdbServer) *Catalog {
	return NewCatalog(NewClient("test-key", srv.URL, "es-ES", "ES"), nil, config.TMDBConfig{
		Language:    "es-ES",
		RequestRate: 1000,
		Burst:       10,
		CacheTTL:    time.Hour,
		Timeout:     2 * time.Second,
	})
}

func TestCatalog_SearchEnrichesBestMatch(t *testing.T) {
	srv := newTMDBServer(t)
	cat := testCatalog(srv)

	items, err := cat.Search(context.Background(), "Origen")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://www.youtube.com/watch?v=YoHD9XEInc0", items[0].TrailerURL)
	assert.Equal(t, []string{"Netflix", "Movistar Plus+"}, items[0].Platforms)
	assert.Empty(t, items[1].TrailerURL, "only the best match is enriched")
	assert.Equal(t, int32(1), srv.details.Load())
	assert.Equal(t, "/movie/27205?videos,watch/providers", srv.lastPath.Load())
}

func TestCatalog_SearchNoResults(t *testing.T) {
	srv := newTMDBServer(t)
	cat := testCatalog(srv)

	items, err := cat.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int32(0), srv.details.Load())
}

func TestCatalog_TrendingTruncates(t *testing.T) {
	srv := newTMDBServer(t)
	cat := testCatalog(srv)

	items, err := cat.Trending(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = cat.Trending(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalog_SearchCancelled(t *testing.T) {
	srv := newTMDBServer(t)
	cat := testCatalog(srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cat.Search(ctx, "origen")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), srv.searches.Load())
}
