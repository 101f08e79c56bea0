package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, username, password, passwordConfirm string) (*model.User, error) {
	args := m.Called(ctx, email, username, password, passwordConfirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, remember bool) (string, *model.User, error) {
	args := m.Called(ctx, email, password, remember)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSafeNextPath(t *testing.T) {
	tests := []struct {
		name     string
		next     string
		expected string
	}{
		{name: "relative path honored", next: "/questions?page=2", expected: "/questions?page=2"},
		{name: "empty falls back", next: "", expected: "/"},
		{name: "absolute URL rejected", next: "http://evil.example.com/", expected: "/"},
		{name: "protocol-relative rejected", next: "//evil.example.com", expected: "/"},
		{name: "backslash variant rejected", next: `/\evil.example.com`, expected: "/"},
		{name: "bare word rejected", next: "questions", expected: "/"},
		{name: "root honored", next: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeNextPath(tt.next))
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns token and sanitized redirect", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "alice@example.com", "secret", false).
			Return("signed-token", &model.User{ID: 1, Email: "alice@example.com"}, nil)

		h := NewAuthHandler(mockService)
		c, rec := newTestContext(http.MethodPost, "/api/auth/login?next=//evil.example.com",
			`{"email":"alice@example.com","password":"secret"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, "/", resp.Redirect)
	})

	t.Run("bad credentials map to generic 401", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "alice@example.com", "bad", false).
			Return("", nil, apperrors.ErrInvalidCredentials)

		h := NewAuthHandler(mockService)
		c, _ := newTestContext(http.MethodPost, "/api/auth/login",
			`{"email":"alice@example.com","password":"bad"}`)

		err := h.Login(c)
		assert.Error(t, err)

		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)

		resp, ok := he.Message.(apperrors.ErrorResponse)
		assert.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Code)
		assert.Equal(t, "invalid email or password", resp.Error)
	})

	t.Run("missing email rejected before the service", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := NewAuthHandler(mockService)
		c, _ := newTestContext(http.MethodPost, "/api/auth/login", `{"password":"secret"}`)

		err := h.Login(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("duplicate email maps to 409", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "taken@example.com", "alice", "secret", "secret").
			Return(nil, apperrors.ErrEmailTaken)

		h := NewAuthHandler(mockService)
		c, _ := newTestContext(http.MethodPost, "/api/auth/register",
			`{"email":"taken@example.com","username":"alice","password":"secret","password_confirm":"secret"}`)

		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		resp, ok := he.Message.(apperrors.ErrorResponse)
		assert.True(t, ok)
		assert.Equal(t, "EMAIL_TAKEN", resp.Code)
	})

	t.Run("successful registration returns 201", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "alice@example.com", "alice", "secret", "secret").
			Return(&model.User{ID: 1, Email: "alice@example.com", Username: "alice"}, nil)

		h := NewAuthHandler(mockService)
		c, rec := newTestContext(http.MethodPost, "/api/auth/register",
			`{"email":"alice@example.com","username":"alice","password":"secret","password_confirm":"secret"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})
}
