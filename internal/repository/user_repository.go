package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"videoclub/internal/model"
	"videoclub/internal/utils"
)

// UserRepo provides access to the 'usuarios' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a fresh UUID and returns its ID.  The password
// is hashed with bcrypt before it touches the database.  Role defaults to
// "user"; promotion to admin is a manual out-of-band UPDATE.
func (r *UserRepo) Create(ctx context.Context, email, password, nombre, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (id, email, password_hash, nombre, role) VALUES (?,?,?,?,?)",
		id, email, hash, nombre, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,nombre,role,created_at,updated_at FROM usuarios WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,nombre,role,created_at,updated_at FROM usuarios WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
