package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/abinijav/absensi-digital/internal/models"
)

// GetUserByNIS looks a user up by the natural key; nil when not found.
func GetUserByNIS(ctx context.Context, database *sql.DB, nis string) (*models.User, error) {
	row := database.QueryRowContext(ctx, `SELECT id, nis, name, role, class FROM users WHERE nis = $1`, nis)
	var u models.User
	if err := row.Scan(&u.ID, &u.NIS, &u.Name, &u.Role, &u.Class); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UserFilter narrows the roster the way the report screen does:
// a single NIS beats the class filter, and an empty field means "all".
type UserFilter struct {
	Role  models.Role
	Class string
	NIS   string
}

func ListUsers(ctx context.Context, database *sql.DB, f UserFilter) ([]models.User, error) {
	query := `SELECT id, nis, name, role, class FROM users`
	var (
		conds []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, string(f.Role))
		conds = append(conds, "role = $"+strconv.Itoa(len(args)))
	}
	if f.NIS != "" {
		args = append(args, f.NIS)
		conds = append(conds, "nis = $"+strconv.Itoa(len(args)))
	} else if f.Class != "" {
		args = append(args, f.Class)
		conds = append(conds, "class = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.NIS, &u.Name, &u.Role, &u.Class); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func CreateUser(ctx context.Context, database *sql.DB, u models.User) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (nis, name, role, class)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.NIS, u.Name, string(u.Role), u.Class).Scan(&id)
	return id, err
}

// UpdateUserIdentity changes a user's nis/name and cascades both into
// historical attendance rows keyed on the old nis. The two statements
// run sequentially, not in a transaction, matching the store's
// denormalization contract.
func UpdateUserIdentity(ctx context.Context, database *sql.DB, id int64, newNIS, newName string) error {
	var oldNIS string
	if err := database.QueryRowContext(ctx, `SELECT nis FROM users WHERE id = $1`, id).Scan(&oldNIS); err != nil {
		return err
	}
	if _, err := database.ExecContext(ctx, `UPDATE users SET nis = $1, name = $2 WHERE id = $3`, newNIS, newName, id); err != nil {
		return err
	}
	_, err := database.ExecContext(ctx, `UPDATE attendance SET user_nis = $1, name = $2 WHERE user_nis = $3`, newNIS, newName, oldNIS)
	return err
}

func UpdateStudentClass(ctx context.Context, database *sql.DB, id int64, class *string) error {
	_, err := database.ExecContext(ctx, `UPDATE users SET class = $1 WHERE id = $2`, class, id)
	return err
}
