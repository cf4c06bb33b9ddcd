// Package router wires the catalog handlers onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/handler"
	"github.com/iliyamo/painting-catalog/internal/middleware"
)

// Options configures RegisterCatalog.
type Options struct {
	DB     *database.DB
	Logger *zap.Logger
	// JWTSecret enables curator auth on the write routes when non-empty.
	JWTSecret string
	// WriteLimiter, when set, runs on the write routes after auth.
	WriteLimiter echo.MiddlewareFunc
}

// RegisterRoutes registers the routes that need neither a database session
// nor auth.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the HTML pages and the /v1 JSON API. Every
// catalog route runs on its own database session; reads are never cached
// or limited.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, opts Options) {
	session := middleware.DBSession(opts.DB, opts.Logger)
	write := writeGuards(opts)

	e.GET("/", h.Index)
	pages := e.Group("", session)
	pages.GET("/view", h.ViewPage)
	pages.GET("/search", h.SearchPage)
	pages.GET("/artists/new", h.NewArtistPage)
	pages.POST("/artists/new", h.SubmitArtist, write...)
	pages.GET("/cities/new", h.NewCityPage)
	pages.POST("/cities/new", h.SubmitCity, write...)
	pages.GET("/paintings/new", h.NewPaintingPage)
	pages.POST("/paintings/new", h.SubmitPainting, write...)

	v1 := e.Group("/v1", session)
	v1.GET("/countries", h.ListCountries)
	v1.GET("/cities", h.ListCities)
	v1.GET("/cities/:iso/:zipcode/paintings", h.CityPaintings)
	v1.GET("/artists", h.ListArtists)
	v1.GET("/artists/:id/paintings", h.ArtistPaintings)
	v1.GET("/paintings", h.ListPaintings)
	v1.GET("/styles", h.ListStyles)
	v1.GET("/styles/:style/paintings", h.StylePaintings)
	v1.GET("/search/paintings", h.SearchPaintings)
	v1.GET("/search/options", h.SearchOptions)

	v1.POST("/artists", h.CreateArtist, write...)
	v1.POST("/cities", h.CreateCity, write...)
	v1.POST("/paintings", h.CreatePainting, write...)
}

func writeGuards(opts Options) []echo.MiddlewareFunc {
	var mw []echo.MiddlewareFunc
	if opts.JWTSecret != "" {
		mw = append(mw,
			middleware.CuratorAuth(opts.JWTSecret),
			middleware.RequireRole(middleware.RoleCurator),
		)
	}
	if opts.WriteLimiter != nil {
		mw = append(mw, opts.WriteLimiter)
	}
	return mw
}
