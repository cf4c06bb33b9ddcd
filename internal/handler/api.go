package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/painting-catalog/internal/model"
	"github.com/iliyamo/painting-catalog/internal/repository"
)

// JSON API. Every list response wraps its rows in "items", empty lists
// included.

func (h *CatalogHandler) ListCountries(c echo.Context) error {
	items, err := reposFor(c).countries.ListAll(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

func (h *CatalogHandler) ListCities(c echo.Context) error {
	items, err := reposFor(c).cities.ListWithCounts(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

func (h *CatalogHandler) ListArtists(c echo.Context) error {
	items, err := reposFor(c).artists.ListWithCounts(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

func (h *CatalogHandler) ListPaintings(c echo.Context) error {
	items, err := reposFor(c).paintings.ListAll(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

func (h *CatalogHandler) ListStyles(c echo.Context) error {
	items, err := reposFor(c).paintings.Styles(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

// CityPaintings handles GET /v1/cities/:iso/:zipcode/paintings.
func (h *CatalogHandler) CityPaintings(c echo.Context) error {
	key := model.CityKey{
		CountryISO: strings.ToUpper(strings.TrimSpace(c.Param("iso"))),
		Zipcode:    strings.TrimSpace(c.Param("zipcode")),
	}
	if key.CountryISO == "" || key.Zipcode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeInvalidParam, "message": "country iso and zipcode are required"})
	}
	items, err := reposFor(c).paintings.ListByCity(c.Request().Context(), key)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"city": key, "items": items, "total": len(items)})
}

// ArtistPaintings handles GET /v1/artists/:id/paintings.
func (h *CatalogHandler) ArtistPaintings(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeInvalidParam, "message": "invalid artist id"})
	}
	items, err := reposFor(c).paintings.ListByArtist(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"artist_id": id, "items": items, "total": len(items)})
}

// StylePaintings handles GET /v1/styles/:style/paintings.
func (h *CatalogHandler) StylePaintings(c echo.Context) error {
	style := strings.TrimSpace(c.Param("style"))
	if style == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeInvalidParam, "message": "style is required"})
	}
	items, err := reposFor(c).paintings.ListByStyle(c.Request().Context(), style)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"style": style, "items": items, "total": len(items)})
}

// SearchPaintings handles GET /v1/search/paintings. Each facet may be
// repeated: ?country=France&country=Spain&style=Cubism.
func (h *CatalogHandler) SearchPaintings(c echo.Context) error {
	res, err := reposFor(c).paintings.Search(c.Request().Context(), searchQuery(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// SearchOptions handles GET /v1/search/options.
func (h *CatalogHandler) SearchOptions(c echo.Context) error {
	opts, err := reposFor(c).paintings.FilterOptions(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, opts)
}

func searchQuery(c echo.Context) repository.SearchQuery {
	q := c.QueryParams()
	return repository.SearchQuery{
		Countries: q[string(repository.FilterCountry)],
		Cities:    q[string(repository.FilterCity)],
		Artists:   q[string(repository.FilterArtist)],
		Styles:    q[string(repository.FilterStyle)],
	}
}

// CreateArtist handles POST /v1/artists.
func (h *CatalogHandler) CreateArtist(c echo.Context) error {
	var in ArtistInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeValidation, "message": "invalid request body"})
	}
	a, err := h.addArtist(c, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// CreateCity handles POST /v1/cities.
func (h *CatalogHandler) CreateCity(c echo.Context) error {
	var in CityInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeValidation, "message": "invalid request body"})
	}
	city, n, err := h.addCity(c, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"city": city, "cities_in_country": n})
}

// CreatePainting handles POST /v1/paintings.
func (h *CatalogHandler) CreatePainting(c echo.Context) error {
	var in PaintingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errCodeValidation, "message": "invalid request body"})
	}
	p, err := h.addPainting(c, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
