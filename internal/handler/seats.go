package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"boxoffice/internal/config"
	"boxoffice/internal/failure"
	"boxoffice/internal/model"
	"boxoffice/internal/repository"
	"boxoffice/internal/seatmap"
	"boxoffice/internal/validate"
)

// SeatHandler serves the seat map: derived per-slot status, the static
// layout, advisory selections and blocking.  Status is computed fresh on
// every call; the seat map is the one surface where staleness costs a
// double sale.
type SeatHandler struct {
	Cfg        config.Config
	Seats      *repository.SeatRepo
	Bookings   *repository.BookingRepo
	Bms        *repository.BmsRepo
	Selections *repository.SelectionRepo
}

// NewSeatHandler constructs a SeatHandler.  All dependencies must be
// non-nil.
func NewSeatHandler(cfg config.Config, seats *repository.SeatRepo, bookings *repository.BookingRepo, bms *repository.BmsRepo, selections *repository.SelectionRepo) *SeatHandler {
	if seats == nil || bookings == nil || bms == nil || selections == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Cfg: cfg, Seats: seats, Bookings: bookings, Bms: bms, Selections: selections}
}

// ----- DTOs -----

type statusResp struct {
	Date      string                      `json:"date"`
	Show      string                      `json:"show"`
	Statuses  map[string]model.SeatStatus `json:"statuses"`
	Booked    []string                    `json:"booked"`
	BmsBooked []string                    `json:"bmsBooked"`
	Selected  []string                    `json:"selected"`
	Blocked   []string                    `json:"blocked"`
}

type selectReq struct {
	Date  string   `json:"date" validate:"required,datetime=2006-01-02"`
	Show  string   `json:"show" validate:"required"`
	Seats []string `json:"seats" validate:"required,min=1,dive,required"`
}

type layoutSeat struct {
	ID     string `json:"id"`
	Number uint32 `json:"number"`
	Active bool   `json:"active"`
}
type layoutRowPart struct {
	Row   string       `json:"row"`
	Class string       `json:"class"`
	Seats []layoutSeat `json:"seats"`
}

// Status handles GET /api/seats/status.  It walks the seat inventory
// for the slot and overlays selections, BMS sales and ledger sales, in
// that order of precedence.  Calling it twice without writes in between
// returns the same answer.
func (h *SeatHandler) Status(c echo.Context) error {
	date, show, err := parseSlot(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	layout, err := h.Seats.ListAll(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	booked, err := h.Bookings.SeatsForSlot(ctx, date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	bms, err := h.Bms.SeatsForSlot(ctx, date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	selected, err := h.Selections.ActiveForSlot(ctx, date, show)
	if err != nil {
		return failure.FromDB(err)
	}

	rep := seatmap.Compose(date, show, layout, booked, bms, selected)
	return c.JSON(http.StatusOK, statusResp{
		Date:      rep.Date,
		Show:      rep.Show.String(),
		Statuses:  rep.Statuses,
		Booked:    rep.Booked,
		BmsBooked: rep.BmsBooked,
		Selected:  rep.Selected,
		Blocked:   rep.Blocked,
	})
}

// Layout handles GET /api/seats/layout.  It returns the static seat
// inventory grouped by row, in house order.
func (h *SeatHandler) Layout(c echo.Context) error {
	seats, err := h.Seats.ListAll(c.Request().Context())
	if err != nil {
		return failure.FromDB(err)
	}
	rows := make([]layoutRowPart, 0, 24)
	for _, s := range seats {
		if len(rows) == 0 || rows[len(rows)-1].Row != s.RowLabel {
			rows = append(rows, layoutRowPart{Row: s.RowLabel, Class: s.ClassLabel, Seats: make([]layoutSeat, 0, 24)})
		}
		last := len(rows) - 1
		rows[last].Seats = append(rows[last].Seats, layoutSeat{ID: s.SeatID, Number: s.SeatNumber, Active: s.IsActive})
	}
	return c.JSON(http.StatusOK, echo.Map{"rows": rows, "seatCount": len(seats)})
}

// Select handles POST /api/seats/select.  It replaces the terminal's
// selection for the slot with the given seats under a fresh TTL.  Seats
// already sold or held by another desk make the call fail with 409 and
// leave the previous selection in place.
func (h *SeatHandler) Select(c echo.Context) error {
	termID, _, err := sessionTerminal(c)
	if err != nil {
		return err
	}
	var req selectReq
	if err := c.Bind(&req); err != nil {
		return failure.Validation("invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	show, ok := model.ParseShow(strings.ToUpper(strings.TrimSpace(req.Show)))
	if !ok {
		return failure.Validation("show must be one of MORNING, MATINEE, EVENING, NIGHT")
	}
	seats := dedupeSeats(req.Seats)
	if len(seats) == 0 {
		return failure.Validation("seats must contain at least one seat id")
	}

	ctx := c.Request().Context()
	booked, err := h.Bookings.SeatsForSlot(ctx, req.Date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	bms, err := h.Bms.SeatsForSlot(ctx, req.Date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	sold := make(map[string]bool, len(booked)+len(bms))
	for _, id := range booked {
		sold[id] = true
	}
	for _, id := range bms {
		sold[id] = true
	}
	for _, id := range seats {
		if sold[id] {
			return failure.Conflictf("seat %s is already booked for this slot", id)
		}
	}

	tx, err := h.Selections.DB().BeginTx(ctx, nil)
	if err != nil {
		return failure.FromDB(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Selections.ExpireTx(ctx, tx, req.Date, show); err != nil {
		return failure.FromDB(err)
	}
	foreign, err := h.Selections.ForeignActiveTx(ctx, tx, req.Date, show, termID, seats)
	if err != nil {
		return failure.FromDB(err)
	}
	if len(foreign) > 0 {
		return failure.Conflictf("seats held by another terminal: %s", strings.Join(foreign, ", "))
	}
	expiresAt := time.Now().UTC().Add(time.Duration(h.Cfg.SelectionTTLSec) * time.Second)
	if err := h.Selections.ReplaceTx(ctx, tx, termID, req.Date, show, seats, expiresAt); err != nil {
		return failure.FromDB(err)
	}
	if err := tx.Commit(); err != nil {
		return failure.FromDB(err)
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"date":      req.Date,
		"show":      show.String(),
		"seats":     seats,
		"expiresAt": expiresAt.Format(time.RFC3339),
	})
}

// Release handles DELETE /api/seats/select.  It drops the terminal's
// own selection for the slot and reports how many holds were removed.
func (h *SeatHandler) Release(c echo.Context) error {
	termID, _, err := sessionTerminal(c)
	if err != nil {
		return err
	}
	date, show, err := parseSlot(c)
	if err != nil {
		return err
	}
	n, err := h.Selections.Release(c.Request().Context(), termID, date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": n})
}

// Block handles POST /api/seats/:id/block.  A blocked seat stays
// blocked for every slot until unblocked; existing bookings on it are
// left untouched.  Admin only.
func (h *SeatHandler) Block(c echo.Context) error {
	return h.setSeatActive(c, false)
}

// Unblock handles POST /api/seats/:id/unblock, the reverse of Block.
func (h *SeatHandler) Unblock(c echo.Context) error {
	return h.setSeatActive(c, true)
}

func (h *SeatHandler) setSeatActive(c echo.Context, active bool) error {
	id := strings.ToUpper(strings.TrimSpace(c.Param("id")))
	if id == "" {
		return failure.Validation("seat id is required")
	}
	if err := h.Seats.SetActive(c.Request().Context(), id, active); err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "active": active})
}
