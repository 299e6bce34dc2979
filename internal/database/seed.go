package database

import (
    "context"
    "database/sql"
    "fmt"

    "boxoffice/internal/model"
)

// layoutRow describes one physical row of the auditorium.
type layoutRow struct {
    label string
    class string
    seats int
}

// defaultLayout is the single-screen floor plan, front of house first.
// Row labels feed the pricing prefixes, so a BOX-A seat is born with
// the BOX class and so on down the house.
var defaultLayout = []layoutRow{
    {"BOX-A", model.ClassBox, 6},
    {"BOX-B", model.ClassBox, 6},
    {"SC-A", model.ClassStarClass, 18},
    {"SC-B", model.ClassStarClass, 18},
    {"SC-C", model.ClassStarClass, 18},
    {"SC-D", model.ClassStarClass, 18},
    {"CB-A", model.ClassClassicBalcony, 20},
    {"CB-B", model.ClassClassicBalcony, 20},
    {"CB-C", model.ClassClassicBalcony, 20},
    {"FC-A", model.ClassFirstClass, 22},
    {"FC-B", model.ClassFirstClass, 22},
    {"FC-C", model.ClassFirstClass, 22},
    {"FC-D", model.ClassFirstClass, 22},
    {"FC-E", model.ClassFirstClass, 22},
    {"FC-F", model.ClassFirstClass, 22},
    {"SEC-A", model.ClassSecondClass, 24},
    {"SEC-B", model.ClassSecondClass, 24},
    {"SEC-C", model.ClassSecondClass, 24},
}

// SeedSeats inserts the default layout. INSERT IGNORE keeps existing
// rows untouched, so seats the owner has blocked stay blocked across
// restarts and the seed can run on every boot.
func SeedSeats(ctx context.Context, db *sql.DB) error {
    const q = `INSERT IGNORE INTO seats (seat_id, row_label, seat_number, class_label, is_active, created_at)
               VALUES (?, ?, ?, ?, 1, UTC_TIMESTAMP())`
    for _, row := range defaultLayout {
        for n := 1; n <= row.seats; n++ {
            seatID := fmt.Sprintf("%s-%d", row.label, n)
            if _, err := db.ExecContext(ctx, q, seatID, row.label, n, row.class); err != nil {
                return fmt.Errorf("seed seat %s: %w", seatID, err)
            }
        }
    }
    return nil
}
