package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
)

// staticToken implements gateway.TokenSource.
type staticToken string

func (t staticToken) Token() string { return string(t) }

// hitCounter records requests per method+path.
type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func newHitCounter() *hitCounter {
	return &hitCounter{hits: make(map[string]int)}
}

func (h *hitCounter) record(r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[r.Method+" "+r.URL.Path]++
}

func (h *hitCounter) count(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[key]
}

func respond(w http.ResponseWriter, status int, data any) {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":    status < 400,
		"statusCode": status,
		"data":       raw,
	})
}

// newTestResources wires a real gateway and cache against a test server.
func newTestResources(t *testing.T, handler http.Handler) (*Resources, *cache.QueryCache, *hitCounter) {
	t.Helper()

	counter := newHitCounter()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.record(r)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	gw := gateway.NewClient(server.URL, 5*time.Second, staticToken("tok"), nil)
	qc := cache.New(0, nil)
	return NewResources(gw, qc), qc, counter
}

func clinicHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []domain.Service{{ID: "svc-1", Name: "Haircut", DurationMinutes: 30}})
	})
	mux.HandleFunc("POST /services", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusCreated, domain.Service{ID: "svc-2", Name: "Shave", DurationMinutes: 15})
	})
	mux.HandleFunc("GET /staff", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []domain.Staff{{ID: "st-1", Name: "Dana", MaxCapacity: 3}})
	})
	mux.HandleFunc("PATCH /staff/st-1", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, domain.Staff{ID: "st-1", Name: "Dana", MaxCapacity: 5})
	})
	mux.HandleFunc("GET /appointments", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []domain.Appointment{
			{ID: "apt-1", CustomerName: "Kim", ServiceID: "svc-1", Status: domain.StatusScheduled},
		})
	})
	mux.HandleFunc("PATCH /appointments/apt-1/cancel", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, domain.Appointment{ID: "apt-1", Status: domain.StatusCancelled})
	})
	mux.HandleFunc("GET /queue/waiting", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []domain.WaitingAppointment{})
	})
	mux.HandleFunc("POST /queue/assign", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, domain.WaitingAppointment{
			Appointment: domain.Appointment{ID: "apt-2", StaffID: "st-1", Status: domain.StatusScheduled},
		})
	})
	mux.HandleFunc("GET /dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, domain.DashboardSummary{TotalAppointments: 4})
	})
	return mux
}

func TestListServices_SecondCallHitsCache(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())

	for range 3 {
		items, err := r.ListServices(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
	}
	assert.Equal(t, 1, counter.count("GET /services"))
}

func TestGetService_ResolvesFromCachedListing(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	svc, err := r.GetService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Haircut", svc.Name)

	// A second lookup rides the cached listing.
	_, err = r.GetService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, counter.count("GET /services"))

	_, err = r.GetService(ctx, "svc-9")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// primeAll fills every listing partition once.
func primeAll(t *testing.T, r *Resources) {
	t.Helper()
	ctx := context.Background()

	_, err := r.ListAppointments(ctx, gateway.AppointmentFilter{})
	require.NoError(t, err)
	_, err = r.WaitingQueue(ctx)
	require.NoError(t, err)
	_, err = r.DashboardSummary(ctx, "")
	require.NoError(t, err)
	_, err = r.ListStaff(ctx)
	require.NoError(t, err)
	_, err = r.ListServices(ctx)
	require.NoError(t, err)
}

func TestCreateService_StalesDerivedPartitions(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	primeAll(t, r)

	_, err := r.CreateService(ctx, domain.CreateServicePayload{
		Name:            "Shave",
		DurationMinutes: 15,
	})
	require.NoError(t, err)

	primeAll(t, r)

	// Appointments, queue, and dashboard are derived from service
	// definitions; staff are not.
	assert.Equal(t, 2, counter.count("GET /services"))
	assert.Equal(t, 2, counter.count("GET /appointments"))
	assert.Equal(t, 2, counter.count("GET /queue/waiting"))
	assert.Equal(t, 2, counter.count("GET /dashboard/summary"))
	assert.Equal(t, 1, counter.count("GET /staff"), "staff are untouched by service writes")
}

func TestUpdateStaff_StalesDerivedPartitions(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	primeAll(t, r)

	capacity := 5
	_, err := r.UpdateStaff(ctx, "st-1", domain.UpdateStaffPayload{MaxCapacity: &capacity})
	require.NoError(t, err)

	primeAll(t, r)

	assert.Equal(t, 2, counter.count("GET /staff"))
	assert.Equal(t, 2, counter.count("GET /appointments"))
	assert.Equal(t, 2, counter.count("GET /queue/waiting"))
	assert.Equal(t, 2, counter.count("GET /dashboard/summary"))
	assert.Equal(t, 1, counter.count("GET /services"), "services are untouched by staff writes")
}

func TestAssignFromQueue_StalesDerivedPartitions(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	primeAll(t, r)

	assigned, err := r.AssignFromQueue(ctx, domain.AssignQueuePayload{StaffID: "st-1"})
	require.NoError(t, err)
	assert.Equal(t, "st-1", assigned.StaffID)

	primeAll(t, r)

	// The server picks the appointment, so the whole appointment
	// partition is staled along with queue, staff load, and dashboard.
	assert.Equal(t, 2, counter.count("GET /queue/waiting"))
	assert.Equal(t, 2, counter.count("GET /appointments"))
	assert.Equal(t, 2, counter.count("GET /staff"))
	assert.Equal(t, 2, counter.count("GET /dashboard/summary"))
	assert.Equal(t, 1, counter.count("GET /services"), "services are untouched by queue assignment")
}

func TestFailedMutation_LeavesCacheFresh(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []domain.Service{{ID: "svc-1", Name: "Haircut"}})
	})
	mux.HandleFunc("POST /services", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusInternalServerError, nil)
	})
	r, _, counter := newTestResources(t, mux)

	_, err := r.ListServices(context.Background())
	require.NoError(t, err)

	_, err = r.CreateService(context.Background(), domain.CreateServicePayload{
		Name:            "Shave",
		DurationMinutes: 15,
	})
	assert.True(t, errors.Is(err, domain.ErrServerUnavailable))

	_, err = r.ListServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counter.count("GET /services"), "a failed write must not stale anything")
}

func TestValidationFailure_NeverReachesWireOrCache(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())

	_, err := r.ListAppointments(context.Background(), gateway.AppointmentFilter{})
	require.NoError(t, err)

	_, err = r.CreateAppointment(context.Background(), domain.CreateAppointmentPayload{
		CustomerName: "Kim", // missing serviceId and date
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Zero(t, counter.count("POST /appointments"))

	_, err = r.ListAppointments(context.Background(), gateway.AppointmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.count("GET /appointments"))
}

func TestCancelAppointment_StalesDerivedPartitions(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	// Prime every partition the cancellation is expected to touch, plus
	// one it must not.
	_, err := r.ListAppointments(ctx, gateway.AppointmentFilter{})
	require.NoError(t, err)
	_, err = r.WaitingQueue(ctx)
	require.NoError(t, err)
	_, err = r.DashboardSummary(ctx, "")
	require.NoError(t, err)
	_, err = r.ListStaff(ctx)
	require.NoError(t, err)
	_, err = r.ListServices(ctx)
	require.NoError(t, err)

	apt, err := r.CancelAppointment(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, apt.Status)

	_, err = r.ListAppointments(ctx, gateway.AppointmentFilter{})
	require.NoError(t, err)
	_, err = r.WaitingQueue(ctx)
	require.NoError(t, err)
	_, err = r.DashboardSummary(ctx, "")
	require.NoError(t, err)
	_, err = r.ListStaff(ctx)
	require.NoError(t, err)
	_, err = r.ListServices(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, counter.count("GET /appointments"))
	assert.Equal(t, 2, counter.count("GET /queue/waiting"))
	assert.Equal(t, 2, counter.count("GET /dashboard/summary"))
	assert.Equal(t, 2, counter.count("GET /staff"))
	assert.Equal(t, 1, counter.count("GET /services"), "services are untouched by appointment writes")
}

func TestDistinctFilters_DistinctEntries(t *testing.T) {
	r, _, counter := newTestResources(t, clinicHandler())
	ctx := context.Background()

	_, err := r.ListAppointments(ctx, gateway.AppointmentFilter{Date: "2026-08-31"})
	require.NoError(t, err)
	_, err = r.ListAppointments(ctx, gateway.AppointmentFilter{Status: domain.StatusWaiting})
	require.NoError(t, err)
	_, err = r.ListAppointments(ctx, gateway.AppointmentFilter{Date: "2026-08-31"})
	require.NoError(t, err)

	assert.Equal(t, 2, counter.count("GET /appointments"))
}
