package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/license-service/internal/cache"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/events"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// renewalValidity is the fixed extension applied by Renew regardless of the
// configured issuing validity.
const renewalValidity = 365 * 24 * time.Hour

// LicenseService coordinates the driving license lifecycle. Every operation
// takes the owning user explicitly and resolves the single license bound to
// that identity.
type LicenseService struct {
	licenses   repository.LicenseRepository
	cache      *cache.LicenseCache
	dispatcher events.Dispatcher
	validity   time.Duration
	now        func() time.Time
}

// LicenseDependencies bundles requirements for the license service.
type LicenseDependencies struct {
	LicenseRepo repository.LicenseRepository
	Cache       *cache.LicenseCache
	Dispatcher  events.Dispatcher
}

// LicenseCreateInput describes license creation payload.
type LicenseCreateInput struct {
	FirstName   string
	LastName    string
	VehicleType string
	VehicleMake *string
	Address     string
}

// LicenseUpdateInput describes the wholesale info update payload. Every
// field overwrites the stored value; there are no partial-update semantics.
type LicenseUpdateInput struct {
	FirstName   string
	LastName    string
	VehicleType string
	VehicleMake *string
	Address     string
	Status      string
}

// NewLicenseService constructs the service.
func NewLicenseService(cfg config.Config, deps LicenseDependencies) *LicenseService {
	return &LicenseService{
		licenses:   deps.LicenseRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		validity:   cfg.License.Validity(),
		now:        time.Now,
	}
}

// Create issues a driving license for the user. A user holds at most one
// license; a second create is rejected as a conflict.
func (s *LicenseService) Create(ctx context.Context, userID string, input LicenseCreateInput) (*domain.License, error) {
	errs := fieldErrors{}
	errs.requireRange("firstName", input.FirstName, "First name", 2, 50)
	errs.requireRange("lastName", input.LastName, "Last name", 2, 50)
	errs.requirePresent("vehicleType", input.VehicleType, "Vehicle type")
	errs.requireRange("address", input.Address, "Address", 5, 200)
	if err := errs.asError(); err != nil {
		return nil, err
	}

	if _, err := s.licenses.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.NewConflict("driving license already exists for user", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	issued := s.now()
	license := &domain.License{
		UserID:         userID,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		LicenseNumber:  generateLicenseNumber(),
		IssueDate:      issued,
		ExpirationDate: issued.Add(s.validity),
		VehicleType:    strings.TrimSpace(input.VehicleType),
		VehicleMake:    input.VehicleMake,
		Address:        strings.TrimSpace(input.Address),
		Status:         domain.LicenseStatusPending,
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Set(ctx, license)
	s.publishEvent(ctx, events.Event{
		Type:   events.EventLicenseCreated,
		UserID: userID,
		Payload: events.LicenseCreatedPayload{
			LicenseNumber:  license.LicenseNumber,
			VehicleType:    license.VehicleType,
			Status:         license.Status,
			ExpirationDate: license.ExpirationDate,
		},
	})
	return license, nil
}

// Get returns the user's license, reading through the cache.
func (s *LicenseService) Get(ctx context.Context, userID string) (*domain.License, error) {
	if cached, err := s.cache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}
	license, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, license)
	return license, nil
}

// UpdateStatus sets the license status. Unknown values are rejected with a
// validation error rather than silently ignored.
func (s *LicenseService) UpdateStatus(ctx context.Context, userID, rawStatus string) (*domain.License, error) {
	status, err := domain.ParseLicenseStatus(rawStatus)
	if err != nil {
		return nil, apperrors.NewValidationError("Validation failed", map[string]any{
			"status": "Status must be one of PENDING, CANCELLED, SUBMITTED, PRINTED, DISPATCHED, DELIVERED",
		})
	}

	license, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldStatus := license.Status
	license.Status = status
	if err := s.persist(ctx, license); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLicenseStatusChanged,
		UserID: userID,
		Payload: events.LicenseStatusChangedPayload{
			LicenseNumber: license.LicenseNumber,
			OldStatus:     oldStatus,
			NewStatus:     status,
		},
	})
	return license, nil
}

// UpdateInfo overwrites all mutable fields, status included. The license
// number, issue date and expiration date are untouched.
func (s *LicenseService) UpdateInfo(ctx context.Context, userID string, input LicenseUpdateInput) (*domain.License, error) {
	errs := fieldErrors{}
	errs.requireRange("firstName", input.FirstName, "First name", 2, 50)
	errs.requireRange("lastName", input.LastName, "Last name", 2, 50)
	errs.requirePresent("vehicleType", input.VehicleType, "Vehicle type")
	errs.requireRange("address", input.Address, "Address", 5, 200)
	status, parseErr := domain.ParseLicenseStatus(input.Status)
	if parseErr != nil {
		errs["licenseStatus"] = "Status must be one of PENDING, CANCELLED, SUBMITTED, PRINTED, DISPATCHED, DELIVERED"
	}
	if err := errs.asError(); err != nil {
		return nil, err
	}

	license, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	license.FirstName = strings.TrimSpace(input.FirstName)
	license.LastName = strings.TrimSpace(input.LastName)
	license.VehicleType = strings.TrimSpace(input.VehicleType)
	license.VehicleMake = input.VehicleMake
	license.Address = strings.TrimSpace(input.Address)
	license.Status = status
	if err := s.persist(ctx, license); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLicenseUpdated,
		UserID: userID,
		Payload: events.LicenseUpdatedPayload{
			LicenseNumber: license.LicenseNumber,
			Fields:        []string{"firstName", "lastName", "vehicleType", "vehicleMake", "address", "status"},
		},
	})
	return license, nil
}

// ChangeAddress overwrites the address only.
func (s *LicenseService) ChangeAddress(ctx context.Context, userID, address string) (*domain.License, error) {
	errs := fieldErrors{}
	errs.requireRange("address", address, "Address", 5, 200)
	if err := errs.asError(); err != nil {
		return nil, err
	}

	license, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	license.Address = strings.TrimSpace(address)
	if err := s.persist(ctx, license); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLicenseUpdated,
		UserID: userID,
		Payload: events.LicenseUpdatedPayload{
			LicenseNumber: license.LicenseNumber,
			Fields:        []string{"address"},
		},
	})
	return license, nil
}

// Renew restarts the validity window: issue date becomes now and the
// expiration lands exactly 365 days later, regardless of the prior
// expiration. Status is unchanged.
func (s *LicenseService) Renew(ctx context.Context, userID string) (*domain.License, error) {
	license, err := s.loadOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	issued := s.now()
	license.IssueDate = issued
	license.ExpirationDate = issued.Add(renewalValidity)
	if err := s.persist(ctx, license); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLicenseRenewed,
		UserID: userID,
		Payload: events.LicenseRenewedPayload{
			LicenseNumber:  license.LicenseNumber,
			IssueDate:      license.IssueDate,
			ExpirationDate: license.ExpirationDate,
		},
	})
	return license, nil
}

func (s *LicenseService) loadOwned(ctx context.Context, userID string) (*domain.License, error) {
	license, err := s.licenses.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("driving license", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return license, nil
}

func (s *LicenseService) persist(ctx context.Context, license *domain.License) error {
	if err := s.licenses.Update(ctx, license); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return apperrors.NewConflict("driving license was modified concurrently", nil)
		}
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, license.UserID)
	return nil
}

// generateLicenseNumber returns a collision-resistant license number backed
// by a random 128-bit UUID.
func generateLicenseNumber() string {
	return "DL-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func (s *LicenseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}

func stampEvent(event events.Event) events.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}
