package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/handler"
	"github.com/iliyamo/painting-catalog/internal/middleware"
	"github.com/iliyamo/painting-catalog/internal/queue"
	"github.com/iliyamo/painting-catalog/internal/testutil"
	"github.com/iliyamo/painting-catalog/internal/utils"
	"github.com/iliyamo/painting-catalog/internal/web"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.RecordCreatedEvent
}

func (p *recordingPublisher) PublishRecordCreated(_ context.Context, ev queue.RecordCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Events() []queue.RecordCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.RecordCreatedEvent(nil), p.events...)
}

func newServer(t *testing.T, db *database.DB, secret string) (*echo.Echo, *recordingPublisher) {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	pub := &recordingPublisher{}
	h := handler.NewCatalogHandler(pub, zap.NewNop())
	h.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	RegisterRoutes(e)
	RegisterCatalog(e, h, Options{DB: db, Logger: zap.NewNop(), JWTSecret: secret})
	return e, pub
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestHealthz(t *testing.T) {
	e, _ := newServer(t, testutil.OpenDB(t), "")
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSearchPaintingsJSON(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedMonet(t, db)
	e, _ := newServer(t, db, "")

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/search/paintings?country=France", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			Title      string `json:"title"`
			ArtistName string `json:"artist_name"`
			CityName   string `json:"city_name"`
		} `json:"items"`
		Total           int `json:"total"`
		DistinctArtists int `json:"distinct_artists"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Water Lilies", body.Items[0].Title)
	assert.Equal(t, "Claude Monet", body.Items[0].ArtistName)
	assert.Equal(t, "Paris", body.Items[0].CityName)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.DistinctArtists)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/search/paintings?country=Japan", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListEndpointsOnEmptyCatalog(t *testing.T) {
	e, _ := newServer(t, testutil.OpenDB(t), "")
	for _, path := range []string{"/v1/countries", "/v1/cities", "/v1/artists", "/v1/paintings", "/v1/styles"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String(), path)
	}
}

func TestPaintingsByKey(t *testing.T) {
	db := testutil.OpenDB(t)
	monetID := testutil.SeedMonet(t, db)
	e, _ := newServer(t, db, "")

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/cities/fr/75001/paintings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"artist_name":"Claude Monet"`)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/artists/"+itoa(monetID)+"/paintings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"country_name":"France"`)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/artists/abc/paintings", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/styles/Impressionism/paintings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Water Lilies"`)
}

func TestAddCityFormRejectsEmptyZipcode(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedMonet(t, db)
	e, pub := newServer(t, db, "")
	before := testutil.Count(t, db, "city")

	rec := serve(e, postForm("/cities/new", url.Values{"country_iso": {"FR"}, "zipcode": {""}, "name": {"Paris"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "zipcode is required")
	assert.Equal(t, before, testutil.Count(t, db, "city"))
	assert.Empty(t, pub.Events())
}

func TestAddCityForm(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedMonet(t, db)
	e, pub := newServer(t, db, "")

	rec := serve(e, postForm("/cities/new", url.Values{"country_iso": {"FR"}, "zipcode": {"75016"}, "name": {"Paris"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cities in this country: 2.")
	require.Len(t, pub.Events(), 1)
	assert.Equal(t, "FR:75016", pub.Events()[0].Key)
}

func TestCreateCityUnknownCountry(t *testing.T) {
	db := testutil.OpenDB(t)
	e, _ := newServer(t, db, "")

	rec := serve(e, postJSON("/v1/cities", `{"country_iso":"ZZ","zipcode":"1","name":"Nowhere"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"constraint_violation"`)
	assert.Equal(t, 0, testutil.Count(t, db, "city"))
}

func TestCreateArtistJSON(t *testing.T) {
	db := testutil.OpenDB(t)
	e, pub := newServer(t, db, "")

	rec := serve(e, postJSON("/v1/artists", `{"first_name":"Yayoi","last_name":"Kusama","birth_year":1929,"death_year":0}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"death_year":null`)

	var isNull bool
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT death_year IS NULL FROM artist WHERE last_name = 'Kusama'").Scan(&isNull))
	assert.True(t, isNull)

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, queue.KindArtist, events[0].Kind)
	assert.Equal(t, "Yayoi Kusama", events[0].Summary)

	rec = serve(e, postJSON("/v1/artists", `{"first_name":"","last_name":"Kusama","birth_year":1929}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"validation_error"`)
	assert.Equal(t, 1, testutil.Count(t, db, "artist"))
}

func TestCreatePaintingIsAtomic(t *testing.T) {
	db := testutil.OpenDB(t)
	monetID := testutil.SeedMonet(t, db)
	e, _ := newServer(t, db, "")

	rec := serve(e, postJSON("/v1/paintings",
		`{"title":"Ghost","style_type":"Impressionism","artist_id":`+itoa(monetID)+`,"city":"FR:99999"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, testutil.Count(t, db, "painting"))
	assert.Equal(t, 1, testutil.Count(t, db, "painted"))
	assert.Equal(t, 1, testutil.Count(t, db, "visitable"))

	rec = serve(e, postJSON("/v1/paintings",
		`{"title":"Impression, Sunrise","style_type":"Impressionism","year_created":1872,"artist_id":`+itoa(monetID)+`,"city":"FR:75001"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, testutil.Count(t, db, "painting"))
	assert.Equal(t, 2, testutil.Count(t, db, "painted"))
	assert.Equal(t, 2, testutil.Count(t, db, "visitable"))
}

func TestAddPaintingFormDefaultsYear(t *testing.T) {
	db := testutil.OpenDB(t)
	monetID := testutil.SeedMonet(t, db)
	e, _ := newServer(t, db, "")

	rec := serve(e, postForm("/paintings/new", url.Values{
		"title":      {"Study"},
		"style_type": {"Impressionism"},
		"artist_id":  {itoa(monetID)},
		"city":       {"FR:75001"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "added successfully")

	var year int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT year_created FROM painting WHERE title = 'Study'").Scan(&year))
	assert.Equal(t, 2000, year)
}

func TestViewPage(t *testing.T) {
	db := testutil.OpenSeededDB(t)
	e, _ := newServer(t, db, "")

	t.Run("all paintings", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/view", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Total Paintings</strong>: 15")
		assert.NotContains(t, body, "Pumpkin")
	})

	t.Run("by city defaults to first city", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/view?type=by_city", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		// Amsterdam sorts first and holds The Night Watch
		assert.Contains(t, rec.Body.String(), "The Night Watch")
	})

	t.Run("by city selection", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/view?type=by_city&city=FR:75001", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Water Lilies")
		assert.Contains(t, body, "Paintings in this city</strong>: 2")
	})

	t.Run("unknown type", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/view?type=everything", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSearchPage(t *testing.T) {
	db := testutil.OpenSeededDB(t)
	e, _ := newServer(t, db, "")

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/search?style=Cubism", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Guernica")
	assert.Contains(t, body, "Total Results</strong>: 2")
	assert.Contains(t, body, "Unique Artists</strong>: 1")
}

func TestWriteRoutesRequireCurator(t *testing.T) {
	const secret = "s3cret"
	db := testutil.OpenDB(t)
	e, _ := newServer(t, db, secret)
	body := `{"first_name":"Edvard","last_name":"Munch","birth_year":1863,"death_year":1944}`

	rec := serve(e, postJSON("/v1/artists", body))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, testutil.Count(t, db, "artist"))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/artists", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "reads stay open")

	tok, err := utils.NewAccessToken(secret, "curator-1", middleware.RoleCurator, time.Minute)
	require.NoError(t, err)
	req := postJSON("/v1/artists", body)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec = serve(e, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
