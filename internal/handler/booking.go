package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"boxoffice/internal/config"
	"boxoffice/internal/failure"
	"boxoffice/internal/model"
	"boxoffice/internal/pricing"
	"boxoffice/internal/queue"
	"boxoffice/internal/repository"
	queue_publisher "boxoffice/internal/service"
	"boxoffice/internal/validate"
)

// BookingHandler groups the repositories needed to sell, list and
// reconcile bookings.  All methods assume session authentication has
// already been performed by middleware.  Writes that touch several
// tables run inside a transaction owned here.
type BookingHandler struct {
	Cfg        config.Config
	Bookings   *repository.BookingRepo
	Selections *repository.SelectionRepo
	Bms        *repository.BmsRepo
	Settings   *repository.SettingsRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must
// be non-nil.
func NewBookingHandler(cfg config.Config, bookings *repository.BookingRepo, selections *repository.SelectionRepo, bms *repository.BmsRepo, settings *repository.SettingsRepo) *BookingHandler {
	if bookings == nil || selections == nil || bms == nil || settings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Cfg: cfg, Bookings: bookings, Selections: selections, Bms: bms, Settings: settings}
}

// ----- DTOs -----

type createBookingReq struct {
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Show         string   `json:"show" validate:"required"`
	Movie        string   `json:"movie" validate:"required,min=1,max=128"`
	Class        string   `json:"class" validate:"max=32"`
	Seats        []string `json:"seats" validate:"required,min=1,dive,required"`
	PricePerSeat *float64 `json:"pricePerSeat" validate:"required,gte=0"`
}

type syncReq struct {
	Synced *bool `json:"synced"`
}

type bookingResp struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Show         string    `json:"show"`
	Screen       string    `json:"screen"`
	Movie        string    `json:"movie"`
	Class        string    `json:"class"`
	Seats        []string  `json:"seats"`
	SeatCount    int       `json:"seatCount"`
	PricePerSeat float64   `json:"pricePerSeat"`
	TotalPrice   float64   `json:"totalPrice"`
	BookedAt     time.Time `json:"bookedAt"`
	Synced       bool      `json:"synced"`
	CreatedBy    string    `json:"createdBy"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:           b.ID,
		Date:         b.Date,
		Show:         b.Show.String(),
		Screen:       b.Screen,
		Movie:        b.Movie,
		Class:        b.ClassLabel,
		Seats:        b.Seats,
		SeatCount:    len(b.Seats),
		PricePerSeat: b.PricePerSeat,
		TotalPrice:   b.TotalPrice,
		BookedAt:     b.BookedAt,
		Synced:       b.Synced,
		CreatedBy:    b.CreatedBy,
	}
}

type showStatsPart struct {
	Bookings  int     `json:"bookings"`
	SeatsSold int     `json:"seatsSold"`
	Income    float64 `json:"income"`
}

type statsResp struct {
	Date        string                   `json:"date"`
	Show        string                   `json:"show,omitempty"`
	Bookings    int                      `json:"bookings"`
	SeatsSold   int                      `json:"seatsSold"`
	BmsSeats    int                      `json:"bmsSeats"`
	LocalIncome float64                  `json:"localIncome"`
	BmsIncome   float64                  `json:"bmsIncome"`
	VipIncome   float64                  `json:"vipIncome"`
	TotalIncome float64                  `json:"totalIncome"`
	ByShow      map[string]showStatsPart `json:"byShow,omitempty"`
}

// Create handles POST /api/bookings.  It sells a set of seats for one
// slot at a uniform per-seat price: the class label is derived from the
// first seat's row, the total is price times seat count, and any seat
// selections covering the sold seats are cleared in the same
// transaction.  A seat already sold for the slot makes the whole sale
// fail with 409; nothing is partially written.
func (h *BookingHandler) Create(c echo.Context) error {
	termID, _, err := sessionTerminal(c)
	if err != nil {
		return err
	}

	var req createBookingReq
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

	// Pre-check so the usual conflict names the seats.  The unique key
	// on booking_seats still guards the race between this read and the
	// insert below.
	booked, err := h.Bookings.SeatsForSlot(ctx, req.Date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	sold := make(map[string]bool, len(booked))
	for _, id := range booked {
		sold[id] = true
	}
	var taken []string
	for _, id := range seats {
		if sold[id] {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		return failure.Conflictf("seats already booked for this slot: %s", strings.Join(taken, ", "))
	}

	theater, err := h.Settings.Theater(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	times, err := h.Settings.Showtimes(ctx)
	if err != nil {
		return failure.FromDB(err)
	}

	// The checkout normally sends the tier it sold; when it does not,
	// the class falls out of the first seat's row.
	class := strings.TrimSpace(req.Class)
	if class == "" {
		class = pricing.ClassForRow(model.RowOfSeat(seats[0]))
	}

	price := *req.PricePerSeat
	b := model.Booking{
		ID:           uuid.NewString(),
		Date:         req.Date,
		Show:         show,
		Screen:       theater.Screen,
		Movie:        strings.TrimSpace(req.Movie),
		ClassLabel:   class,
		PricePerSeat: price,
		TotalPrice:   price * float64(len(seats)),
		Seats:        seats,
		BookedAt:     time.Now().UTC(),
		CreatedBy:    termID,
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return failure.FromDB(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// the sale supersedes any holds on these seats, local or foreign
	if err := h.Selections.DeleteForSeatsTx(ctx, tx, b.Date, b.Show, seats); err != nil {
		return failure.FromDB(err)
	}
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return failure.FromDB(err)
	}
	if err := h.Bookings.CreateSeatsBulkTx(ctx, tx, &b); err != nil {
		return failure.FromDB(err)
	}
	if err := tx.Commit(); err != nil {
		return failure.FromDB(err)
	}
	committed = true

	if h.Cfg.AMQPURL != "" {
		ev := queue.TicketIssuedEvent{
			BookingID:    b.ID,
			Theater:      theater.Name,
			Screen:       b.Screen,
			Movie:        b.Movie,
			Date:         b.Date,
			Show:         string(b.Show),
			ShowTime:     times.Times[b.Show],
			Class:        b.ClassLabel,
			Seats:        b.Seats,
			PricePerSeat: b.PricePerSeat,
			TotalPrice:   b.TotalPrice,
			BookedAt:     b.BookedAt.Format(time.RFC3339),
			IssuedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishTicketIssued(pctx, h.Cfg.AMQPURL, h.Cfg.TicketQueue, ev)
		}()
	}

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// List handles GET /api/bookings.  Date, show, movie and synced narrow
// the result; limit and offset page through it, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	var f repository.BookingFilter

	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			return failure.Validation("date must be a valid YYYY-MM-DD date")
		}
		f.Date = d
	}
	show, err := parseOptionalShow(c)
	if err != nil {
		return err
	}
	f.Show = show
	f.Movie = strings.TrimSpace(c.QueryParam("movie"))
	if s := c.QueryParam("synced"); s != "" {
		v := s == "true"
		f.Synced = &v
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		f.Limit = n
	}
	if n, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		f.Offset = n
	}

	items, err := h.Bookings.List(c.Request().Context(), f)
	if err != nil {
		return failure.FromDB(err)
	}
	out := make([]bookingResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// Get handles GET /api/bookings/:id and returns one booking with its
// seats, or 404 when the ID is unknown.
func (h *BookingHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failure.Validation("booking id is required")
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, toBookingResp(*b))
}

// Stats handles GET /api/bookings/stats.  For a date it reports the
// box-office and BMS takings side by side; BMS income is estimated from
// the current price table because BMS records carry no price.  Without
// a show parameter the response also breaks the day down per slot.
func (h *BookingHandler) Stats(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return failure.Validation("date must be a valid YYYY-MM-DD date")
	}
	show, err := parseOptionalShow(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	stats, err := h.Bookings.StatsForSlot(ctx, date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	counts, err := h.Bms.CountByClass(ctx, date, show)
	if err != nil {
		return failure.FromDB(err)
	}
	ps, err := h.Settings.Pricing(ctx)
	if err != nil {
		return failure.FromDB(err)
	}
	res := pricing.New(ps)
	for class, n := range counts {
		stats.BmsSeats += n
		stats.BmsIncome += res.PriceForClass(class) * float64(n)
	}
	stats.TotalIncome = stats.LocalIncome + stats.BmsIncome

	resp := statsResp{
		Date:        date,
		Show:        show.String(),
		Bookings:    stats.Bookings,
		SeatsSold:   stats.SeatsSold,
		BmsSeats:    stats.BmsSeats,
		LocalIncome: stats.LocalIncome,
		BmsIncome:   stats.BmsIncome,
		VipIncome:   stats.VipIncome,
		TotalIncome: stats.TotalIncome,
	}
	if show == "" {
		byShow, err := h.Bookings.StatsByShow(ctx, date)
		if err != nil {
			return failure.FromDB(err)
		}
		resp.ByShow = make(map[string]showStatsPart, len(byShow))
		for s, st := range byShow {
			resp.ByShow[s.String()] = showStatsPart{Bookings: st.Bookings, SeatsSold: st.SeatsSold, Income: st.Income}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Sync handles PATCH /api/bookings/:id/sync.  It flips the synced flag
// once the office ledger has picked the sale up; an absent body marks
// the booking synced.
func (h *BookingHandler) Sync(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failure.Validation("booking id is required")
	}
	var req syncReq
	_ = c.Bind(&req)
	val := true
	if req.Synced != nil {
		val = *req.Synced
	}
	if err := h.Bookings.MarkSynced(c.Request().Context(), id, val); err != nil {
		return failure.FromDB(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "synced": val})
}

// Delete handles DELETE /api/bookings/:id.  Removing the booking frees
// its seats through the cascade on booking_seats.  Admin only; desks
// correct mistakes by asking the office.
func (h *BookingHandler) Delete(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failure.Validation("booking id is required")
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		return failure.FromDB(err)
	}
	return c.NoContent(http.StatusNoContent)
}
