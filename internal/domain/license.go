package domain

import (
	"fmt"
	"time"
)

// LicenseStatus enumerates workflow stages for a driving license.
type LicenseStatus string

const (
	LicenseStatusPending    LicenseStatus = "PENDING"
	LicenseStatusCancelled  LicenseStatus = "CANCELLED"
	LicenseStatusSubmitted  LicenseStatus = "SUBMITTED"
	LicenseStatusPrinted    LicenseStatus = "PRINTED"
	LicenseStatusDispatched LicenseStatus = "DISPATCHED"
	LicenseStatusDelivered  LicenseStatus = "DELIVERED"
)

// ParseLicenseStatus validates a raw status value against the closed set.
// Matching is exact; unknown values are rejected rather than ignored. The
// returned value is always one of the canonical constants, never the input
// string, so callers may retain it even when raw aliases a transport buffer.
func ParseLicenseStatus(raw string) (LicenseStatus, error) {
	switch LicenseStatus(raw) {
	case LicenseStatusPending:
		return LicenseStatusPending, nil
	case LicenseStatusCancelled:
		return LicenseStatusCancelled, nil
	case LicenseStatusSubmitted:
		return LicenseStatusSubmitted, nil
	case LicenseStatusPrinted:
		return LicenseStatusPrinted, nil
	case LicenseStatusDispatched:
		return LicenseStatusDispatched, nil
	case LicenseStatusDelivered:
		return LicenseStatusDelivered, nil
	default:
		return "", fmt.Errorf("unknown license status %q", raw)
	}
}

// License is the aggregate for a user's driving license. Exactly one row
// exists per owner; the license number is assigned at creation and never
// changes. Version is an optimistic concurrency counter bumped on every
// write.
type License struct {
	ID             string
	UserID         string
	FirstName      string
	LastName       string
	LicenseNumber  string
	IssueDate      time.Time
	ExpirationDate time.Time
	VehicleType    string
	VehicleMake    *string
	Address        string
	Status         LicenseStatus
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
