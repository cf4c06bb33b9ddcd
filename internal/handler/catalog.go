package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/metrics"
	"github.com/iliyamo/painting-catalog/internal/middleware"
	"github.com/iliyamo/painting-catalog/internal/model"
	"github.com/iliyamo/painting-catalog/internal/queue"
	"github.com/iliyamo/painting-catalog/internal/repository"
	"github.com/iliyamo/painting-catalog/internal/service"
)

// CatalogHandler serves the catalog pages and the JSON API. It holds no
// request state: repositories are bound to the request's database session.
type CatalogHandler struct {
	Publisher service.Publisher
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewCatalogHandler builds a handler; a nil publisher drops audit events.
func NewCatalogHandler(pub service.Publisher, logger *zap.Logger) *CatalogHandler {
	if pub == nil {
		pub = service.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{Publisher: pub, Logger: logger, Now: time.Now}
}

type repos struct {
	countries *repository.CountryRepo
	cities    *repository.CityRepo
	artists   *repository.ArtistRepo
	paintings *repository.PaintingRepo
}

func reposFor(c echo.Context) repos {
	s := middleware.Session(c)
	return repos{
		countries: repository.NewCountryRepo(s),
		cities:    repository.NewCityRepo(s),
		artists:   repository.NewArtistRepo(s),
		paintings: repository.NewPaintingRepo(s),
	}
}

func (h *CatalogHandler) maxYear() int { return h.Now().Year() }

// addArtist validates and stores an artist.
func (h *CatalogHandler) addArtist(c echo.Context, in ArtistInput) (model.Artist, error) {
	a, err := in.validate(h.maxYear())
	if err != nil {
		return model.Artist{}, h.countWrite(queue.KindArtist, err)
	}
	if err := reposFor(c).artists.Create(c.Request().Context(), &a); err != nil {
		return model.Artist{}, h.countWrite(queue.KindArtist, err)
	}
	h.countWrite(queue.KindArtist, nil)
	h.publish(c.Request().Context(), queue.KindArtist, strconv.FormatInt(a.ID, 10), a.FullName())
	return a, nil
}

// addCity validates and stores a city and returns how many cities its
// country now has.
func (h *CatalogHandler) addCity(c echo.Context, in CityInput) (model.City, int64, error) {
	city, err := in.validate()
	if err != nil {
		return model.City{}, 0, h.countWrite(queue.KindCity, err)
	}
	r := reposFor(c)
	ctx := c.Request().Context()
	if err := r.cities.Create(ctx, city); err != nil {
		return model.City{}, 0, h.countWrite(queue.KindCity, err)
	}
	h.countWrite(queue.KindCity, nil)
	h.publish(ctx, queue.KindCity, city.CityKey.String(), city.Name)

	n, err := r.cities.CountByCountry(ctx, city.CountryISO)
	if err != nil {
		h.Logger.Warn("count cities by country", zap.String("iso", city.CountryISO), zap.Error(err))
	}
	return city, n, nil
}

// addPainting validates and stores a painting with its artist and city
// links in one transaction.
func (h *CatalogHandler) addPainting(c echo.Context, in PaintingInput) (*model.Painting, error) {
	np, err := in.validate(h.maxYear())
	if err != nil {
		return nil, h.countWrite(queue.KindPainting, err)
	}
	p, err := reposFor(c).paintings.Create(c.Request().Context(), np)
	if err != nil {
		return nil, h.countWrite(queue.KindPainting, err)
	}
	h.countWrite(queue.KindPainting, nil)
	h.publish(c.Request().Context(), queue.KindPainting, strconv.FormatInt(p.SerialNumber, 10), p.Title)
	return p, nil
}

// countWrite records the outcome of a write attempt and returns err as is.
func (h *CatalogHandler) countWrite(kind string, err error) error {
	outcome := "ok"
	var verr *ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		outcome = "invalid"
	case errors.Is(err, repository.ErrForeignKey), errors.Is(err, repository.ErrDuplicate):
		outcome = "conflict"
	default:
		outcome = "error"
		h.Logger.Error("catalog write failed", zap.String("kind", kind), zap.Error(err))
	}
	metrics.Writes.WithLabelValues(kind, outcome).Inc()
	return err
}

func (h *CatalogHandler) publish(ctx context.Context, kind, key, summary string) {
	ev := queue.RecordCreatedEvent{
		Kind:      kind,
		Key:       key,
		Summary:   summary,
		CreatedAt: h.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishRecordCreated(ctx, ev); err != nil {
		h.Logger.Warn("publish record created", zap.String("kind", kind), zap.String("key", key), zap.Error(err))
	}
}

// errorStatus maps a write or read error onto an HTTP status and error code.
func errorStatus(err error) (int, string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errCodeValidation
	case errors.Is(err, repository.ErrForeignKey), errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, errCodeConflict
	}
	return http.StatusInternalServerError, errCodeDatabase
}

// userMessage is the text shown to the user for err. Constraint
// violations get a readable prefix; the driver message follows.
func userMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrForeignKey):
		return "referenced record does not exist (" + err.Error() + ")"
	case errors.Is(err, repository.ErrDuplicate):
		return "record already exists (" + err.Error() + ")"
	}
	return err.Error()
}

func jsonError(c echo.Context, err error) error {
	status, code := errorStatus(err)
	return c.JSON(status, echo.Map{"error": code, "message": userMessage(err)})
}
