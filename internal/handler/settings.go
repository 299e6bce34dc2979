package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"boxoffice/internal/failure"
	"boxoffice/internal/model"
	"boxoffice/internal/repository"
)

// SettingsHandler exposes the owner's configuration: the price table,
// the advertised show times and the theater identity printed on
// tickets.  Reads are open to any session; writes are admin only.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
}

func NewSettingsHandler(settings *repository.SettingsRepo) *SettingsHandler {
	if settings == nil {
		panic("nil repository passed to NewSettingsHandler")
	}
	return &SettingsHandler{Settings: settings}
}

// Get handles GET /api/settings and returns the three effective
// sections in one payload, defaults filled in for anything the owner
// has not overridden.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	ps, err := h.Settings.Pricing(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	st, err := h.Settings.Showtimes(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	th, err := h.Settings.Theater(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"pricing":   ps,
		"showtimes": st,
		"theater":   th,
	})
}

// GetPricing handles GET /api/settings/pricing.
func (h *SettingsHandler) GetPricing(c echo.Context) error {
	ps, err := h.Settings.Pricing(c.Request().Context())
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, ps)
}

// GetShowtimes handles GET /api/settings/showtimes.
func (h *SettingsHandler) GetShowtimes(c echo.Context) error {
	st, err := h.Settings.Showtimes(c.Request().Context())
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, st)
}

// GetTheater handles GET /api/settings/theater.
func (h *SettingsHandler) GetTheater(c echo.Context) error {
	th, err := h.Settings.Theater(c.Request().Context())
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, th)
}

// PutPricing handles PUT /api/settings/pricing.  The table is stored
// wholesale; classes left out fall back to their defaults on read.
func (h *SettingsHandler) PutPricing(c echo.Context) error {
	var req model.PricingSettings
	if err := c.Bind(&req); err != nil {
		return failure.Validation("invalid request body")
	}
	if len(req.Prices) == 0 {
		return failure.Validation("prices must contain at least one class")
	}
	for class, amount := range req.Prices {
		if strings.TrimSpace(class) == "" {
			return failure.Validation("price class names must not be empty")
		}
		if amount < 0 {
			return failure.Validationf("price for %s must not be negative", class)
		}
	}
	ctx := c.Request().Context()
	if err := h.Settings.SavePricing(ctx, req); err != nil {
		return failure.FromDB(err)
	}
	eff, err := h.Settings.Pricing(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, eff)
}

// PutShowtimes handles PUT /api/settings/showtimes.  Keys must be
// valid slots; the times themselves are free-form display strings.
func (h *SettingsHandler) PutShowtimes(c echo.Context) error {
	var req model.ShowtimeSettings
	if err := c.Bind(&req); err != nil {
		return failure.Validation("invalid request body")
	}
	if len(req.Times) == 0 {
		return failure.Validation("times must contain at least one show")
	}
	for show := range req.Times {
		if !show.Valid() {
			return failure.Validationf("unknown show %q in times", string(show))
		}
	}
	ctx := c.Request().Context()
	if err := h.Settings.SaveShowtimes(ctx, req); err != nil {
		return failure.FromDB(err)
	}
	eff, err := h.Settings.Showtimes(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, eff)
}

// PutTheater handles PUT /api/settings/theater, the header lines every
// ticket prints.
func (h *SettingsHandler) PutTheater(c echo.Context) error {
	var req model.TheaterSettings
	if err := c.Bind(&req); err != nil {
		return failure.Validation("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Screen = strings.TrimSpace(req.Screen)
	if req.Name == "" {
		return failure.Validation("theater name is required")
	}
	ctx := c.Request().Context()
	if err := h.Settings.SaveTheater(ctx, req); err != nil {
		return failure.FromDB(err)
	}
	eff, err := h.Settings.Theater(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, eff)
}
