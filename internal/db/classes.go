package db

import (
	"context"
	"database/sql"
)

type Class struct {
	ID   int64
	Name string
}

func ListClasses(ctx context.Context, database *sql.DB) ([]Class, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name FROM classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Class
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func GetClassByID(ctx context.Context, database *sql.DB, id int64) (*Class, error) {
	row := database.QueryRowContext(ctx, `SELECT id, name FROM classes WHERE id = $1`, id)
	var c Class
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func CreateClass(ctx context.Context, database *sql.DB, name string) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `INSERT INTO classes (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

// RenameClass renames the class row and cascades the new name into
// users.class and the denormalized attendance.class.
func RenameClass(ctx context.Context, database *sql.DB, id int64, newName string) error {
	var oldName string
	if err := database.QueryRowContext(ctx, `SELECT name FROM classes WHERE id = $1`, id).Scan(&oldName); err != nil {
		return err
	}
	if _, err := database.ExecContext(ctx, `UPDATE classes SET name = $1 WHERE id = $2`, newName, id); err != nil {
		return err
	}
	if _, err := database.ExecContext(ctx, `UPDATE users SET class = $1 WHERE class = $2`, newName, oldName); err != nil {
		return err
	}
	_, err := database.ExecContext(ctx, `UPDATE attendance SET class = $1 WHERE class = $2`, newName, oldName)
	return err
}

func DeleteClass(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
