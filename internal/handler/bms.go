package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"boxoffice/internal/failure"
	"boxoffice/internal/model"
	"boxoffice/internal/pricing"
	"boxoffice/internal/repository"
	"boxoffice/internal/validate"
)

// BmsHandler records seats sold through the external aggregator so the
// desks stop offering them.  Entries are bare seat markers; money stays
// with the aggregator and only ever appears here as an estimate in the
// stats.
type BmsHandler struct {
	Bms *repository.BmsRepo
}

func NewBmsHandler(bms *repository.BmsRepo) *BmsHandler {
	if bms == nil {
		panic("nil repository passed to NewBmsHandler")
	}
	return &BmsHandler{Bms: bms}
}

// ----- DTOs -----

type createBmsReq struct {
	Date  string   `json:"date" validate:"required,datetime=2006-01-02"`
	Show  string   `json:"show" validate:"required"`
	Class string   `json:"class" validate:"max=32"`
	Seats []string `json:"seats" validate:"required,min=1,dive,required"`
}

type bmsResp struct {
	ID        uint64    `json:"id"`
	SeatID    string    `json:"seatId"`
	Date      string    `json:"date"`
	Show      string    `json:"show"`
	Class     string    `json:"class"`
	CreatedAt time.Time `json:"createdAt"`
}

func toBmsResp(b model.BmsBooking) bmsResp {
	return bmsResp{
		ID:        b.ID,
		SeatID:    b.SeatID,
		Date:      b.Date,
		Show:      b.Show.String(),
		Class:     b.ClassLabel,
		CreatedAt: b.CreatedAt,
	}
}

// Create handles POST /api/bms-bookings.  It marks a batch of seats as
// sold on the aggregator for one slot.  The class label is derived per
// seat from its row.  A seat already marked for the slot fails the
// whole batch with 409 so a partial import never goes unnoticed.
func (h *BmsHandler) Create(c echo.Context) error {
	var req createBmsReq
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

	now := time.Now().UTC()
	class := strings.TrimSpace(req.Class)
	entries := make([]model.BmsBooking, 0, len(seats))
	for _, id := range seats {
		label := class
		if label == "" {
			label = pricing.ClassForRow(model.RowOfSeat(id))
		}
		entries = append(entries, model.BmsBooking{
			SeatID:     id,
			Date:       req.Date,
			Show:       show,
			ClassLabel: label,
			CreatedAt:  now,
		})
	}
	if err := h.Bms.CreateBulk(c.Request().Context(), entries); err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"date":    req.Date,
		"show":    show.String(),
		"seats":   seats,
		"created": len(seats),
	})
}

// List handles GET /api/bms-bookings for a date, optionally narrowed to
// one slot, newest first.
func (h *BmsHandler) List(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return failure.Validation("date must be a valid YYYY-MM-DD date")
	}
	show, err := parseOptionalShow(c)
	if err != nil {
		return err
	}
	items, err := h.Bms.List(c.Request().Context(), date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	out := make([]bmsResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBmsResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// Delete handles DELETE /api/bms-bookings/:id, used when the aggregator
// cancels a sale.  Admin only.
func (h *BmsHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return failure.Validation("invalid bms booking id")
	}
	if err := h.Bms.Delete(c.Request().Context(), id); err != nil {
		return failure.FromDB(err)
	}
	return c.NoContent(http.StatusNoContent)
}
