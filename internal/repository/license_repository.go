package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
)

// ErrVersionConflict is returned when an update loses an optimistic
// concurrency race: the row exists but its version no longer matches the
// one the caller read.
var ErrVersionConflict = errors.New("license version conflict")

// LicenseRepository encapsulates driving license persistence.
type LicenseRepository interface {
	Create(ctx context.Context, license *domain.License) error
	Update(ctx context.Context, license *domain.License) error
	GetByUserID(ctx context.Context, userID string) (*domain.License, error)
}

type licenseRepository struct {
	pool *pgxpool.Pool
}

// NewLicenseRepository instantiates repository.
func NewLicenseRepository(pool *pgxpool.Pool) LicenseRepository {
	return &licenseRepository{pool: pool}
}

func (r *licenseRepository) Create(ctx context.Context, license *domain.License) error {
	const query = `
        INSERT INTO driving_licenses (user_id, first_name, last_name, license_number, issue_date, expiration_date, vehicle_type, vehicle_make, address, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		license.UserID,
		license.FirstName,
		license.LastName,
		license.LicenseNumber,
		license.IssueDate,
		license.ExpirationDate,
		license.VehicleType,
		license.VehicleMake,
		license.Address,
		license.Status,
	).Scan(&license.ID, &license.Version, &license.CreatedAt, &license.UpdatedAt)
}

// Update persists mutable fields guarded by the version read by the caller.
// The license number and owner are never rewritten.
func (r *licenseRepository) Update(ctx context.Context, license *domain.License) error {
	const query = `
        UPDATE driving_licenses SET first_name=$1, last_name=$2, issue_date=$3, expiration_date=$4,
            vehicle_type=$5, vehicle_make=$6, address=$7, status=$8, version=version+1, updated_at=NOW()
        WHERE id=$9 AND version=$10`
	cmd, err := r.pool.Exec(ctx, query,
		license.FirstName,
		license.LastName,
		license.IssueDate,
		license.ExpirationDate,
		license.VehicleType,
		license.VehicleMake,
		license.Address,
		license.Status,
		license.ID,
		license.Version,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	license.Version++
	return nil
}

func (r *licenseRepository) GetByUserID(ctx context.Context, userID string) (*domain.License, error) {
	const query = `
        SELECT id, user_id, first_name, last_name, license_number, issue_date, expiration_date,
               vehicle_type, vehicle_make, address, status, version, created_at, updated_at
        FROM driving_licenses WHERE user_id=$1`

	var license domain.License
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&license.ID,
		&license.UserID,
		&license.FirstName,
		&license.LastName,
		&license.LicenseNumber,
		&license.IssueDate,
		&license.ExpirationDate,
		&license.VehicleType,
		&license.VehicleMake,
		&license.Address,
		&license.Status,
		&license.Version,
		&license.CreatedAt,
		&license.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &license, nil
}
