package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkrasnov/backoffice/internal/config"
	"github.com/dkrasnov/backoffice/internal/domain"
	"github.com/dkrasnov/backoffice/internal/service"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func testConfig(env, frontendUrl string) *config.Config {
	return &config.Config{
		Public: config.Public{
			Env:         env,
			FrontendUrl: frontendUrl,
			JwtTTL:      24 * time.Hour,
		},
		Private: config.Private{JwtKey: "testJwtKey"},
	}
}

// --- Service mocks ---

type MockAuthService struct {
	LoginFunc func(creds domain.Credentials) (string, domain.User, error)
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "test_token", domain.User{Id: "u-1", Email: creds.Email, Role: domain.RoleAdmin}, nil
}

type MockOriginService struct {
	OriginsFunc func() ([]domain.TrustedOrigin, error)
	CreateFunc  func(url, displayName string) (domain.TrustedOrigin, error)
	UpdateFunc  func(id int64, url, displayName string) (domain.TrustedOrigin, error)
	DeleteFunc  func(id int64) (domain.TrustedOrigin, error)
}

func (m *MockOriginService) Origins() ([]domain.TrustedOrigin, error) {
	if m.OriginsFunc != nil {
		return m.OriginsFunc()
	}
	return nil, nil
}

func (m *MockOriginService) Create(url, displayName string) (domain.TrustedOrigin, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(url, displayName)
	}
	return domain.TrustedOrigin{Id: 1, Url: url, DisplayName: displayName}, nil
}

func (m *MockOriginService) Update(id int64, url, displayName string) (domain.TrustedOrigin, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, url, displayName)
	}
	return domain.TrustedOrigin{Id: id, Url: url, DisplayName: displayName}, nil
}

func (m *MockOriginService) Delete(id int64) (domain.TrustedOrigin, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return domain.TrustedOrigin{Id: id}, nil
}

type MockUserService struct {
	UsersFunc        func() ([]domain.User, error)
	CreateFunc       func(params service.UserParams) (domain.User, error)
	UpdateFunc       func(id string, params service.UserParams) (domain.User, error)
	ToggleActiveFunc func(id string, active bool) (domain.User, error)
	DeleteFunc       func(id string) (domain.User, error)
}

func (m *MockUserService) Users() ([]domain.User, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc()
	}
	return nil, nil
}

func (m *MockUserService) Create(params service.UserParams) (domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(params)
	}
	return domain.User{Id: "u-new", Email: params.Email}, nil
}

func (m *MockUserService) Update(id string, params service.UserParams) (domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, params)
	}
	return domain.User{Id: id, Email: params.Email}, nil
}

func (m *MockUserService) ToggleActive(id string, active bool) (domain.User, error) {
	if m.ToggleActiveFunc != nil {
		return m.ToggleActiveFunc(id, active)
	}
	return domain.User{Id: id, IsActive: active}, nil
}

func (m *MockUserService) Delete(id string) (domain.User, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return domain.User{Id: id}, nil
}

type MockProfileService struct {
	DeveloperProfileFunc func() (service.DeveloperProfile, error)
}

func (m *MockProfileService) DeveloperProfile() (service.DeveloperProfile, error) {
	if m.DeveloperProfileFunc != nil {
		return m.DeveloperProfileFunc()
	}
	return service.DeveloperProfile{}, nil
}
