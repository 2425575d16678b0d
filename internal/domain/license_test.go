package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLicenseStatus(t *testing.T) {
	valid := []string{"PENDING", "CANCELLED", "SUBMITTED", "PRINTED", "DISPATCHED", "DELIVERED"}
	for _, raw := range valid {
		status, err := ParseLicenseStatus(raw)
		require.NoError(t, err)
		require.Equal(t, LicenseStatus(raw), status)
	}
}

func TestParseLicenseStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "pending", "Pending", "NOT_A_STATUS", "DELIVERED "} {
		_, err := ParseLicenseStatus(raw)
		require.Error(t, err, "raw=%q", raw)
	}
}
