package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		writeEnvelope(w, http.StatusOK, AuthResult{
			User:  domain.User{ID: "user-1", Email: "a@b.c", IsVerified: true},
			Token: "tok-new",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	res, err := c.Login(context.Background(), domain.LoginPayload{
		Email:    "a@b.c",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "tok-new", res.Token)
}

func TestLogin_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with a user missing its id.
		writeEnvelope(w, http.StatusOK, AuthResult{
			User:  domain.User{Email: "a@b.c"},
			Token: "tok",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	_, err := c.Login(context.Background(), domain.LoginPayload{
		Email:    "a@b.c",
		Password: "correct-horse",
	})
	assert.True(t, errors.Is(err, domain.ErrMalformedUser))
}

func TestRegister_FallsBackToRequestEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, map[string]string{})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	email, err := c.Register(context.Background(), domain.RegisterPayload{
		Name:     "Alex",
		Email:    "alex@b.c",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "alex@b.c", email)
}

func TestVerifySession_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"user": domain.User{ID: "user-1", Email: "a@b.c", IsVerified: true},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok-1")
	user, err := c.VerifySession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, user.IsVerified)
}

func TestVerifySession_MalformedUser(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{"missing user", map[string]any{}},
		{"empty id", map[string]any{"user": domain.User{Email: "a@b.c"}}},
		{"empty email", map[string]any{"user": domain.User{ID: "user-1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, tt.data)
			}))
			defer server.Close()

			c := newTestClient(server.URL, "tok-1")
			_, err := c.VerifySession(context.Background())
			assert.True(t, errors.Is(err, domain.ErrMalformedUser), "got %v", err)
		})
	}
}

func TestVerifyOTP_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify-otp", r.URL.Path)
		writeEnvelope(w, http.StatusOK, AuthResult{
			User:  domain.User{ID: "user-1", Email: "a@b.c", IsVerified: true},
			Token: "tok-new",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	res, err := c.VerifyOTP(context.Background(), domain.VerifyOTPPayload{
		Email: "a@b.c",
		OTP:   "123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-new", res.Token)
}
