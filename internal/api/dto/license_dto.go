package dto

import (
	"time"

	"github.com/spec-kit/license-service/internal/domain"
)

// LicenseCreateRequest payload.
type LicenseCreateRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	VehicleType string  `json:"vehicleType"`
	VehicleMake *string `json:"vehicleMake"`
	Address     string  `json:"address"`
}

// LicenseUpdateRequest payload for the wholesale info update.
type LicenseUpdateRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	VehicleType   string  `json:"vehicleType"`
	VehicleMake   *string `json:"vehicleMake"`
	Address       string  `json:"address"`
	LicenseStatus string  `json:"licenseStatus"`
}

// LicenseResponse provides the full license projection.
type LicenseResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	LicenseNumber  string    `json:"licenseNumber"`
	IssueDate      time.Time `json:"issueDate"`
	ExpirationDate time.Time `json:"expirationDate"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	VehicleType    string    `json:"vehicleType"`
	VehicleMake    *string   `json:"vehicleMake"`
	Address        string    `json:"address"`
	LicenseStatus  string    `json:"licenseStatus"`
}

// NewLicenseResponse builds the projection from the domain model.
func NewLicenseResponse(license *domain.License) LicenseResponse {
	return LicenseResponse{
		ID:             license.ID,
		UserID:         license.UserID,
		LicenseNumber:  license.LicenseNumber,
		IssueDate:      license.IssueDate,
		ExpirationDate: license.ExpirationDate,
		FirstName:      license.FirstName,
		LastName:       license.LastName,
		VehicleType:    license.VehicleType,
		VehicleMake:    license.VehicleMake,
		Address:        license.Address,
		LicenseStatus:  string(license.Status),
	}
}
