package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// staticTokens implements TokenSource for testing.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

// writeEnvelope writes the standard response envelope.
func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	_ = json.NewEncoder(w).Encode(envelope{
		Success:    status < 400,
		StatusCode: status,
		Data:       raw,
	})
}

func newTestClient(serverURL, token string) *Client {
	return NewClient(serverURL, 5*time.Second, &staticTokens{token: token}, nil)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []domain.Service{})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok-123")
	_, err := c.ListServices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var sawHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		writeEnvelope(w, http.StatusOK, []domain.Service{})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	_, err := c.ListServices(context.Background())

	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestClient_DecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services", r.URL.Path)
		writeEnvelope(w, http.StatusOK, []domain.Service{
			{ID: "svc-1", Name: "Haircut", DurationMinutes: 30},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	items, err := c.ListServices(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "svc-1", items[0].ID)
	assert.Equal(t, "Haircut", items[0].Name)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"unprocessable", http.StatusUnprocessableEntity, domain.ErrValidation},
		{"server error", http.StatusInternalServerError, domain.ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, nil)
			}))
			defer server.Close()

			c := newTestClient(server.URL, "tok")
			_, err := c.GetStaff(context.Background(), "st-1")
			assert.True(t, errors.Is(err, tt.want), "status %d should map to %v, got %v", tt.status, tt.want, err)
		})
	}
}

func TestClient_AuthRejectHookFiresOnDataEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "expired")
	var rejected bool
	c.SetAuthRejectHook(func() { rejected = true })

	_, err := c.ListServices(context.Background())

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.True(t, rejected, "401 on a data endpoint must trigger the session teardown hook")
}

func TestClient_AuthRejectHookSkipsAuthEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	var rejected bool
	c.SetAuthRejectHook(func() { rejected = true })

	_, err := c.Login(context.Background(), domain.LoginPayload{
		Email:    "a@b.c",
		Password: "wrong-password",
	})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.False(t, rejected, "a failed login must not wipe an unrelated stored session")
}

func TestClient_AuthRejectHookSkipsVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "stale")
	var rejected bool
	c.SetAuthRejectHook(func() { rejected = true })

	_, err := c.VerifySession(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.False(t, rejected, "bootstrap owns the verification outcome")
}

func TestClient_CancellationPassesThrough(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	c := newTestClient(server.URL, "tok")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.ListServices(ctx)
		errCh <- err
	}()

	<-started
	cancel()

	err := <-errCh
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.False(t, errors.Is(err, domain.ErrServerUnavailable),
		"cancellation must stay distinguishable from a network failure")
}

func TestClient_PayloadValidationNeverReachesWire(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeEnvelope(w, http.StatusOK, nil)
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	_, err := c.CreateService(context.Background(), domain.CreateServicePayload{
		Name: "", // required
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Zero(t, requests)
}

func TestClient_FailureWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timeout"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "tok")
	_, err := c.ListServices(context.Background())
	assert.True(t, errors.Is(err, domain.ErrServerUnavailable))
}
