package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/splitledger/internal/models"
)

// AddUser validates the fields and registers a new user with the next ID.
func (s *Service) AddUser(ctx context.Context, name, email, mobile string) (*models.User, error) {
	if err := s.validateUser(userFields{Name: name, Email: email, Mobile: mobile}); err != nil {
		slog.Warn("AddUser validation failed", "error", err)
		return nil, s.reject("add_user", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &models.User{Name: name, Email: email, Mobile: mobile}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("AddUser failed", "error", err)
		return nil, s.reject("add_user", err)
	}

	s.metrics.UserCreated()
	slog.Info("User created", "user_id", user.ID)
	return user, nil
}

// EditUser overwrites name, email and mobile of an existing user.
func (s *Service) EditUser(ctx context.Context, id int64, name, email, mobile string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetUser(ctx, id); err != nil {
		return nil, s.reject("edit_user", err)
	}
	if err := s.validateUser(userFields{Name: name, Email: email, Mobile: mobile}); err != nil {
		slog.Warn("EditUser validation failed", "user_id", id, "error", err)
		return nil, s.reject("edit_user", err)
	}

	user := &models.User{ID: id, Name: name, Email: email, Mobile: mobile}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("EditUser failed", "user_id", id, "error", err)
		return nil, s.reject("edit_user", err)
	}

	slog.Info("User updated", "user_id", id)
	return user, nil
}

// RemoveUser deletes a user. Expenses that reference it are kept as recorded.
func (s *Service) RemoveUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return s.reject("remove_user", err)
	}

	s.metrics.UserRemoved()
	slog.Info("User removed", "user_id", id)
	return nil
}

// GetUser returns the user with the given ID or a *models.NotFoundError.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.GetUser(ctx, id)
}

// ListUsers returns all users keyed by ID.
func (s *Service) ListUsers(ctx context.Context) (map[int64]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.ListUsers(ctx)
}
