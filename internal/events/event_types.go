package events

import (
	"time"

	"github.com/spec-kit/license-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventLicenseCreated       EventType = "license_created"
	EventLicenseStatusChanged EventType = "license_status_changed"
	EventLicenseUpdated       EventType = "license_updated"
	EventLicenseRenewed       EventType = "license_renewed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LicenseCreatedPayload payload.
type LicenseCreatedPayload struct {
	LicenseNumber  string               `json:"license_number"`
	VehicleType    string               `json:"vehicle_type"`
	Status         domain.LicenseStatus `json:"status"`
	ExpirationDate time.Time            `json:"expiration_date"`
}

// LicenseStatusChangedPayload payload.
type LicenseStatusChangedPayload struct {
	LicenseNumber string               `json:"license_number"`
	OldStatus     domain.LicenseStatus `json:"old_status"`
	NewStatus     domain.LicenseStatus `json:"new_status"`
}

// LicenseUpdatedPayload payload.
type LicenseUpdatedPayload struct {
	LicenseNumber string   `json:"license_number"`
	Fields        []string `json:"fields"`
}

// LicenseRenewedPayload payload.
type LicenseRenewedPayload struct {
	LicenseNumber  string    `json:"license_number"`
	IssueDate      time.Time `json:"issue_date"`
	ExpirationDate time.Time `json:"expiration_date"`
}
