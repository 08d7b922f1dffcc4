package repository

import (
	"context"
	"database/sql"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, username, email, password, is_admin, created_at FROM users WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, username, email, password, is_admin, created_at FROM users WHERE email = ?`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserExists reports whether a row already claims the username or email.
func (r *UserRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	var id int
	query := `SELECT id FROM users WHERE username = ? OR email = ? LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.Password)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*entity.UserWithStats, error) {
	query := `
		SELECT
			u.id, u.username, u.email, u.is_admin, u.created_at,
			(SELECT COUNT(*) FROM feedback WHERE user_id = u.id) AS feedback_count,
			(SELECT MAX(created_at) FROM activity_logs WHERE user_id = u.id) AS last_active
		FROM users u
		ORDER BY u.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.UserWithStats
	for rows.Next() {
		var u entity.UserWithStats
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin, &u.CreatedAt, &u.FeedbackCount, &u.LastActive)
		if err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_admin = TRUE`).Scan(&count)
	return count, err
}

// SetAdmin flips the admin flag. Returns the number of rows changed so
// callers can tell a missing user from a successful update.
func (r *UserRepository) SetAdmin(ctx context.Context, id int, isAdmin bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_admin = ? WHERE id = ?`, isAdmin, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) (int64, error) {
	// Feedback rows go first; the FK would cascade but the explicit
	// delete keeps the same behavior when the cascade is absent.
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE user_id = ?`, id)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
