// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ballotpass/server/models"
)

func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = "user-" + uuid.NewString()
	}
	u.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, username, display_name, email, wallet_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Username, u.DisplayName, u.Email, u.WalletAddress, u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, COALESCE(email, ''), COALESCE(wallet_address, ''), created_at
		FROM app_user WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.WalletAddress, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, COALESCE(email, ''), COALESCE(wallet_address, ''), created_at
		FROM app_user WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.WalletAddress, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, display_name, COALESCE(email, ''), COALESCE(wallet_address, ''), created_at
		FROM app_user ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.WalletAddress, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE app_user SET display_name = $1, email = $2, wallet_address = $3 WHERE id = $4
	`, u.DisplayName, u.Email, u.WalletAddress, u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrUserNotFound
	}
	return s.GetUser(ctx, u.ID)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
