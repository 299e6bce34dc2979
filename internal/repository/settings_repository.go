package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"boxoffice/internal/model"
)

// Setting names used in the settings table.
const (
	settingPricing   = "pricing"
	settingShowtimes = "showtimes"
	settingTheater   = "theater"
)

// SettingsRepo stores the owner's configuration as one JSON value
// per name.  Reads overlay the stored value on the built-in
// defaults, so a fresh database answers sensibly without any setup
// and a partial override leaves the rest of the defaults intact.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo constructs a SettingsRepo with the given DB handle.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) get(ctx context.Context, name string, dest interface{}) (bool, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SettingsRepo) put(ctx context.Context, name string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	const q = `INSERT INTO settings (name, value, updated_at) VALUES (?, ?, UTC_TIMESTAMP())
	           ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = UTC_TIMESTAMP()`
	_, err = r.db.ExecContext(ctx, q, name, raw)
	return err
}

// Pricing returns the effective pricing table, stored overrides
// overlaid on the defaults.
func (r *SettingsRepo) Pricing(ctx context.Context) (model.PricingSettings, error) {
	eff := model.DefaultPricing()
	var stored model.PricingSettings
	found, err := r.get(ctx, settingPricing, &stored)
	if err != nil {
		return eff, err
	}
	if found {
		for class, amount := range stored.Prices {
			eff.Prices[class] = amount
		}
	}
	return eff, nil
}

// SavePricing stores the pricing table wholesale.
func (r *SettingsRepo) SavePricing(ctx context.Context, ps model.PricingSettings) error {
	return r.put(ctx, settingPricing, ps)
}

// Showtimes returns the effective slot times, stored overrides
// overlaid on the defaults.
func (r *SettingsRepo) Showtimes(ctx context.Context) (model.ShowtimeSettings, error) {
	eff := model.DefaultShowtimes()
	var stored model.ShowtimeSettings
	found, err := r.get(ctx, settingShowtimes, &stored)
	if err != nil {
		return eff, err
	}
	if found {
		for show, at := range stored.Times {
			eff.Times[show] = at
		}
	}
	return eff, nil
}

// SaveShowtimes stores the slot times wholesale.
func (r *SettingsRepo) SaveShowtimes(ctx context.Context, st model.ShowtimeSettings) error {
	return r.put(ctx, settingShowtimes, st)
}

// Theater returns the ticket header lines, the default when nothing
// is stored.
func (r *SettingsRepo) Theater(ctx context.Context) (model.TheaterSettings, error) {
	eff := model.DefaultTheater()
	var stored model.TheaterSettings
	found, err := r.get(ctx, settingTheater, &stored)
	if err != nil {
		return eff, err
	}
	if found {
		if stored.Name != "" {
			eff.Name = stored.Name
		}
		if stored.Screen != "" {
			eff.Screen = stored.Screen
		}
	}
	return eff, nil
}

// SaveTheater stores the ticket header lines.
func (r *SettingsRepo) SaveTheater(ctx context.Context, ts model.TheaterSettings) error {
	return r.put(ctx, settingTheater, ts)
}
