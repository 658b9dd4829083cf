package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// List returns all users ordered by username
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	if err := r.db.SelectContext(ctx, &users, "SELECT username, name, avatar_url FROM users ORDER BY username"); err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// GetByUsername retrieves a user by username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		r.db.Rebind("SELECT username, name, avatar_url FROM users WHERE username = ?"), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &user, nil
}

// Exists checks if a user with the given username exists
func (r *userRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.db.Rebind("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)"), username)
	if err != nil {
		return false, storageErr("check user", err)
	}
	return exists, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "users")
}
