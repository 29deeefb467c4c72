package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"movie-discovery-llm-recommender/internal/models"
)

// Client is the TMDB API client.
type Client struct {
	http     *resty.Client
	language string
	region   string
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL, language, region string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetQueryParam("api_key", apiKey).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &Client{http: http, language: language, region: region}
}

// ---- TMDB Response Types (internal, not exposed to consumers) ----

type pagedResponse struct {
	Page    int          `json:"page"`
	Results []tmdbResult `json:"results"`
}

// tmdbResult is a movie, tv or person entry of a multi search or trending list.
type tmdbResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
}

type detailResponse struct {
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	WatchProviders struct {
		Results map[string]struct {
			Flatrate []struct {
				ProviderName string `json:"provider_name"`
			} `json:"flatrate"`
		} `json:"results"`
	} `json:"watch/providers"`
}

type tmdbVideo struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Details holds the per-title data that search results lack.
type Details struct {
	TrailerURL string
	Platforms  []string
}

// ---- Client Methods ----

// Search runs a multi search and returns movies and series in relevance
// order. People are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]models.CatalogItem, error) {
	slog.Debug("searching TMDB", "query", query)
	var result pagedResponse
	err := c.get(ctx, "/search/multi", map[string]string{
		"query":         query,
		"language":      c.language,
		"include_adult": "false",
		"page":          "1",
	}, &result)
	if err != nil {
		return nil, err
	}

	items := make([]models.CatalogItem, 0, len(result.Results))
	for _, r := range result.Results {
		if item, ok := r.catalogItem(); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// Trending returns this week's trending movies and series.
func (c *Client) Trending(ctx context.Context) ([]models.TrendingItem, error) {
	slog.Debug("fetching TMDB trending")
	var result pagedResponse
	if err := c.get(ctx, "/trending/all/week", map[string]string{"language": c.language}, &result); err != nil {
		return nil, err
	}

	items := make([]models.TrendingItem, 0, len(result.Results))
	for _, r := range result.Results {
		mt, ok := mediaType(r.MediaType)
		if !ok {
			continue
		}
		items = append(items, models.TrendingItem{ID: r.ID, Title: r.title(), MediaType: mt})
	}
	return items, nil
}

// Details fetches the trailer and the flat-rate streaming platforms of a
// title in the configured region.
func (c *Client) Details(ctx context.Context, id int, mt models.MediaType) (*Details, error) {
	path := "/movie/" + strconv.Itoa(id)
	if mt == models.MediaSeries {
		path = "/tv/" + strconv.Itoa(id)
	}

	slog.Debug("fetching TMDB details", "tmdb_id", id, "media_type", mt)
	var result detailResponse
	err := c.get(ctx, path, map[string]string{
		"language":           c.language,
		"append_to_response": "videos,watch/providers",
	}, &result)
	if err != nil {
		return nil, err
	}

	d := &Details{}
	for _, v := range result.Videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" && v.Key != "" {
			d.TrailerURL = models.YouTubeWatchURL + v.Key
			break
		}
	}
	if region, ok := result.WatchProviders.Results[c.region]; ok {
		for _, p := range region.Flatrate {
			d.Platforms = append(d.Platforms, p.ProviderName)
		}
	}
	return d, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (r tmdbResult) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

func (r tmdbResult) catalogItem() (models.CatalogItem, bool) {
	mt, ok := mediaType(r.MediaType)
	if !ok || r.title() == "" {
		return models.CatalogItem{}, false
	}
	item := models.CatalogItem{
		ID:          r.ID,
		Title:       r.title(),
		Overview:    r.Overview,
		ReleaseDate: r.ReleaseDate,
		GenreIDs:    r.GenreIDs,
		Popularity:  r.Popularity,
		VoteAverage: r.VoteAverage,
		MediaType:   mt,
	}
	if item.ReleaseDate == "" {
		item.ReleaseDate = r.FirstAirDate
	}
	if r.PosterPath != "" {
		item.PosterURL = models.TMDBImageBaseW500 + r.PosterPath
	}
	return item, true
}

func mediaType(s string) (models.MediaType, bool) {
	switch s {
	case "movie":
		return models.MediaMovie, true
	case "tv":
		return models.MediaSeries, true
	}
	return "", false
}
