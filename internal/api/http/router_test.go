package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/observability"
	"github.com/spec-kit/license-service/internal/repository"
	"github.com/spec-kit/license-service/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type licensePayload struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	LicenseNumber  string  `json:"licenseNumber"`
	IssueDate      string  `json:"issueDate"`
	ExpirationDate string  `json:"expirationDate"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	VehicleType    string  `json:"vehicleType"`
	VehicleMake    *string `json:"vehicleMake"`
	Address        string  `json:"address"`
	LicenseStatus  string  `json:"licenseStatus"`
}

type APISuite struct {
	suite.Suite
	app *fiber.App
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = 4

	userRepo := repository.NewUserMemoryRepository()
	licenseRepo := repository.NewLicenseMemoryRepository()

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: userRepo})
	licenseService := service.NewLicenseService(cfg, service.LicenseDependencies{LicenseRepo: licenseRepo})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	s.app = fiber.New()
	RegisterMiddlewares(s.app, logger, metrics, 0)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Licenses:       handlers.NewLicensesHandler(licenseService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})
}

func (s *APISuite) request(method, path, token string, body any) (*nethttp.Response, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, &env), "body: %s", raw)
	return resp, env
}

func (s *APISuite) registerAndLogin(fullName, email string) string {
	resp, env := s.request(nethttp.MethodPost, "/user/createUser", "", fiber.Map{
		"fullName": fullName,
		"email":    email,
		"password": "secret1",
	})
	s.Require().Equal(nethttp.StatusCreated, resp.StatusCode)
	s.Require().True(env.Success)

	resp, env = s.request(nethttp.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret1",
	})
	s.Require().Equal(nethttp.StatusOK, resp.StatusCode)

	var data struct {
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().NotEmpty(data.Auth.Token)
	return data.Auth.Token
}

func (s *APISuite) TestRegistration() {
	s.Run("returns the profile without credential material", func() {
		resp, env := s.request(nethttp.MethodPost, "/user/createUser", "", fiber.Map{
			"fullName": "Jane Driver",
			"email":    "jane@example.com",
			"password": "secret1",
		})
		s.Equal(nethttp.StatusCreated, resp.StatusCode)
		s.True(env.Success)
		s.Equal("User created successfully", env.Message)
		s.JSONEq(`{"email":"jane@example.com","fullName":"Jane Driver"}`, string(env.Data))
	})

	s.Run("rejects a duplicate email", func() {
		s.registerAndLogin("Jane Driver", "dup@example.com")

		resp, env := s.request(nethttp.MethodPost, "/user/createUser", "", fiber.Map{
			"fullName": "Someone Else",
			"email":    "dup@example.com",
			"password": "secret2",
		})
		s.Equal(nethttp.StatusConflict, resp.StatusCode)
		s.False(env.Success)
	})

	s.Run("returns the field to message mapping on invalid input", func() {
		resp, env := s.request(nethttp.MethodPost, "/user/createUser", "", fiber.Map{
			"fullName": "J",
			"email":    "nope",
			"password": "short",
		})
		s.Equal(nethttp.StatusBadRequest, resp.StatusCode)
		s.False(env.Success)
		s.Equal("Validation failed", env.Message)

		var fields map[string]string
		s.Require().NoError(json.Unmarshal(env.Data, &fields))
		s.Contains(fields, "fullName")
		s.Contains(fields, "email")
		s.Contains(fields, "password")
	})
}

func (s *APISuite) TestCurrentUser() {
	s.Run("requires a token", func() {
		resp, env := s.request(nethttp.MethodGet, "/user/currentUser", "", nil)
		s.Equal(nethttp.StatusUnauthorized, resp.StatusCode)
		s.False(env.Success)
	})

	s.Run("returns the authenticated profile", func() {
		token := s.registerAndLogin("Jane Driver", "jane@example.com")

		resp, env := s.request(nethttp.MethodGet, "/user/currentUser", token, nil)
		s.Equal(nethttp.StatusOK, resp.StatusCode)
		s.True(env.Success)
		s.JSONEq(`{"email":"jane@example.com","fullName":"Jane Driver"}`, string(env.Data))
	})
}

func (s *APISuite) TestLicenseLifecycle() {
	token := s.registerAndLogin("Jane Driver", "jane@example.com")

	s.Run("get before create returns not found, not a crash", func() {
		resp, env := s.request(nethttp.MethodGet, "/drivingLicense/getLicenseDetails", token, nil)
		s.Equal(nethttp.StatusNotFound, resp.StatusCode)
		s.False(env.Success)
	})

	var created licensePayload
	s.Run("create issues a pending license", func() {
		resp, env := s.request(nethttp.MethodPost, "/drivingLicense/create", token, fiber.Map{
			"firstName":   "Jane",
			"lastName":    "Driver",
			"vehicleType": "CAR",
			"vehicleMake": "Toyota",
			"address":     "12 Main Street, Springfield",
		})
		s.Require().Equal(nethttp.StatusCreated, resp.StatusCode)
		s.True(env.Success)
		s.Require().NoError(json.Unmarshal(env.Data, &created))
		s.Equal("PENDING", created.LicenseStatus)
		s.NotEmpty(created.LicenseNumber)
	})

	s.Run("second create conflicts", func() {
		resp, env := s.request(nethttp.MethodPost, "/drivingLicense/create", token, fiber.Map{
			"firstName":   "Jane",
			"lastName":    "Driver",
			"vehicleType": "CAR",
			"address":     "12 Main Street, Springfield",
		})
		s.Equal(nethttp.StatusConflict, resp.StatusCode)
		s.False(env.Success)
	})

	s.Run("changeAddress updates only the address", func() {
		resp, env := s.request(nethttp.MethodPost, "/drivingLicense/changeAddress?address=7+New+Road,+Capital+City", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)

		var updated licensePayload
		s.Require().NoError(json.Unmarshal(env.Data, &updated))
		s.Equal("7 New Road, Capital City", updated.Address)
		s.Equal(created.FirstName, updated.FirstName)
		s.Equal(created.LastName, updated.LastName)
		s.Equal(created.LicenseNumber, updated.LicenseNumber)
		s.Equal(created.VehicleType, updated.VehicleType)
		s.Equal(created.LicenseStatus, updated.LicenseStatus)
		s.Equal(created.IssueDate, updated.IssueDate)
		s.Equal(created.ExpirationDate, updated.ExpirationDate)

		resp, env = s.request(nethttp.MethodGet, "/drivingLicense/getLicenseDetails", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
		var got licensePayload
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal("7 New Road, Capital City", got.Address)
	})

	s.Run("updateStatus round trips through get", func() {
		resp, _ := s.request(nethttp.MethodPost, "/drivingLicense/updateStatus?status=DELIVERED", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)

		resp, env := s.request(nethttp.MethodGet, "/drivingLicense/getLicenseDetails", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
		var got licensePayload
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal("DELIVERED", got.LicenseStatus)
	})

	s.Run("updateStatus rejects unknown values", func() {
		resp, env := s.request(nethttp.MethodPost, "/drivingLicense/updateStatus?status=NOT_A_STATUS", token, nil)
		s.Equal(nethttp.StatusBadRequest, resp.StatusCode)
		s.False(env.Success)

		// the stored status must survive later requests reusing the
		// transport buffer, not just the rejection itself
		resp, env = s.request(nethttp.MethodGet, "/drivingLicense/getLicenseDetails", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
		var got licensePayload
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal("DELIVERED", got.LicenseStatus)
	})

	s.Run("renew preserves status", func() {
		resp, env := s.request(nethttp.MethodPost, "/drivingLicense/renewLicense", token, nil)
		s.Require().Equal(nethttp.StatusOK, resp.StatusCode)
		var got licensePayload
		s.Require().NoError(json.Unmarshal(env.Data, &got))
		s.Equal("DELIVERED", got.LicenseStatus)
		s.NotEqual(created.ExpirationDate, got.ExpirationDate)
	})

	s.Run("another user cannot see this license", func() {
		other := s.registerAndLogin("John Rider", "john@example.com")
		resp, env := s.request(nethttp.MethodGet, "/drivingLicense/getLicenseDetails", other, nil)
		s.Equal(nethttp.StatusNotFound, resp.StatusCode)
		s.False(env.Success)
	})
}

func (s *APISuite) TestHealthLive() {
	req := httptest.NewRequest(nethttp.MethodGet, "/health/live", nil)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(nethttp.StatusOK, resp.StatusCode)
}
