package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/license-service/internal/domain"
)

// In-memory repository implementations mirroring the Postgres behavior,
// including unique-constraint violations and the optimistic version check.
// Used by the service and handler test suites in place of a database.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// UserMemoryRepository is a map-backed UserRepository.
type UserMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserMemoryRepository builds an empty store.
func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{users: make(map[string]domain.User)}
}

func (r *UserMemoryRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return uniqueViolation("users_email_key")
		}
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserMemoryRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserMemoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// LicenseMemoryRepository is a map-backed LicenseRepository keyed by owner.
type LicenseMemoryRepository struct {
	mu       sync.RWMutex
	byUserID map[string]domain.License
}

// NewLicenseMemoryRepository builds an empty store.
func NewLicenseMemoryRepository() *LicenseMemoryRepository {
	return &LicenseMemoryRepository{byUserID: make(map[string]domain.License)}
}

func (r *LicenseMemoryRepository) Create(_ context.Context, license *domain.License) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUserID[license.UserID]; exists {
		return uniqueViolation("driving_licenses_user_id_key")
	}
	for _, existing := range r.byUserID {
		if existing.LicenseNumber == license.LicenseNumber {
			return uniqueViolation("driving_licenses_license_number_key")
		}
	}
	now := time.Now()
	license.ID = uuid.NewString()
	license.Version = 1
	license.CreatedAt = now
	license.UpdatedAt = now
	r.byUserID[license.UserID] = *license
	return nil
}

func (r *LicenseMemoryRepository) Update(_ context.Context, license *domain.License) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byUserID[license.UserID]
	if !ok || stored.Version != license.Version {
		return ErrVersionConflict
	}
	license.Version++
	license.UpdatedAt = time.Now()
	r.byUserID[license.UserID] = *license
	return nil
}

func (r *LicenseMemoryRepository) GetByUserID(_ context.Context, userID string) (*domain.License, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	license, ok := r.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	l := license
	return &l, nil
}

var (
	_ UserRepository    = (*UserMemoryRepository)(nil)
	_ LicenseRepository = (*LicenseMemoryRepository)(nil)
)
