package db

import (
	"context"
	"database/sql"

	"github.com/abinijav/absensi-digital/internal/models"
)

// GetTimeSettings reads the singleton settings row; nil before seeding.
func GetTimeSettings(ctx context.Context, database *sql.DB) (*models.TimeSettings, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, checkin_start_hour, checkin_end_hour, checkout_start_hour, checkout_end_hour,
			teacher_checkin_start, teacher_checkin_end, teacher_checkout_start, teacher_checkout_end
		FROM settings LIMIT 1`)

	var s models.TimeSettings
	err := row.Scan(&s.ID, &s.CheckinStartHour, &s.CheckinEndHour, &s.CheckoutStartHour, &s.CheckoutEndHour,
		&s.TeacherCheckinStart, &s.TeacherCheckinEnd, &s.TeacherCheckoutStart, &s.TeacherCheckoutEnd)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func UpdateTimeSettings(ctx context.Context, database *sql.DB, s models.TimeSettings) error {
	_, err := database.ExecContext(ctx, `
		UPDATE settings SET
			checkin_start_hour = $1, checkin_end_hour = $2,
			checkout_start_hour = $3, checkout_end_hour = $4,
			teacher_checkin_start = $5, teacher_checkin_end = $6,
			teacher_checkout_start = $7, teacher_checkout_end = $8
		WHERE id = $9
	`, s.CheckinStartHour, s.CheckinEndHour, s.CheckoutStartHour, s.CheckoutEndHour,
		s.TeacherCheckinStart, s.TeacherCheckinEnd, s.TeacherCheckoutStart, s.TeacherCheckoutEnd, s.ID)
	return err
}
