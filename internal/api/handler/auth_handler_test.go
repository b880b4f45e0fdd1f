package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
)

const validName = "Alice Wonderland Tester"

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			assert.Equal(t, validName, in.Name)
			assert.Equal(t, "alice@example.com", in.Email)
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/signup",
		`{"name":"`+validName+`","email":"alice@example.com","password":"Secret!Pass1"}`, nil)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp["id"])
	assert.Equal(t, "user", resp["role"])
	assert.NotContains(t, resp, "password")
}

func TestAuthHandler_Signup_RejectsBeforeService(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"short name", `{"name":"Bob","email":"bob@example.com","password":"Secret!Pass1"}`},
		{"bad email", `{"name":"` + validName + `","email":"nope","password":"Secret!Pass1"}`},
		{"weak password", `{"name":"` + validName + `","email":"a@example.com","password":"password"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/auth/signup", tc.body, nil)
			err := h.Signup(c)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.ErrEmailInUse
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/auth/signup",
		`{"name":"`+validName+`","email":"alice@example.com","password":"Secret!Pass1"}`, nil)

	err := h.Signup(c)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if password != "Secret!Pass1" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "tok", &domain.User{ID: "u1", Email: email, Role: domain.RoleOwner}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"o@example.com","password":"Secret!Pass1"}`, nil)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, domain.RoleOwner, resp.User.Role)

	c, _ = newContext(http.MethodPost, "/api/auth/login", `{"email":"o@example.com","password":"wrong"}`, nil)
	assert.ErrorIs(t, h.Login(c), domain.ErrUnauthenticated)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var gotUser string
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, oldPassword, newPassword string) error {
			gotUser = userID
			return nil
		},
	}
	h := NewAuthHandler(stub)
	body := `{"oldPassword":"Secret!Pass1","newPassword":"Other!Pass2"}`

	c, rec := newContext(http.MethodPost, "/api/auth/change-password", body, &domain.Identity{UserID: "u9", Role: domain.RoleUser})
	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u9", gotUser)

	c, _ = newContext(http.MethodPost, "/api/auth/change-password", body, nil)
	assert.ErrorIs(t, h.ChangePassword(c), domain.ErrUnauthenticated)

	c, _ = newContext(http.MethodPost, "/api/auth/change-password", `{"oldPassword":"x","newPassword":"short"}`,
		&domain.Identity{UserID: "u9", Role: domain.RoleUser})
	assert.ErrorIs(t, h.ChangePassword(c), domain.ErrValidation)
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/users/me", "", &domain.Identity{UserID: "a1", Role: domain.RoleAdmin})
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"a1"`)
}
