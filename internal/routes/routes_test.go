package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	"github.com/BruksfildServices01/randevu-scheduler/internal/handlers"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopSink struct{}

func (nopSink) Log(audit.Event) error { return nil }

type emptyAuditReader struct{}

func (emptyAuditReader) List(context.Context, audit.Filter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

type nopNotifier struct{}

func (nopNotifier) AppointmentRequested(*models.User, *models.Appointment) {}
func (nopNotifier) AppointmentStatusChanged(*models.Appointment, string) {}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T, policy string) *testServer {
	t.Helper()

	store := memory.NewStore()
	dispatcher := audit.NewDispatcher(nopSink{})
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		StatusPolicy: policy,
		AvatarSize:   64,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:        cfg,
		Appointments:  store,
		Users:         store,
		AuditLogs:     emptyAuditReader{},
		Audit:         dispatcher,
		Notifier:      nopNotifier{},
		Locker:        lock.NoopSlotLocker{},
		ProviderCache: cache.Noop{},
		Health: handlers.NewHealthHandler("test", map[string]handlers.Check{
			"postgres": func(context.Context) error { return nil },
		}, nil),
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FullName:     "Sistem Yöneticisi",
	}))

	return &testServer{t: t, router: r, store: store}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *testServer) register(body map[string]any) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) login(username string) loginResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "123456",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[loginResponse](s.t, w)
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func TestBookingScenario(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyPermissive)

	s.register(map[string]any{
		"username": "kuafor_ahmet", "password": "123456", "role": "provider",
		"full_name": "Ahmet Makas", "category": "Kuaför", "bio": "15 yıllık tecrübe.",
	})
	s.register(map[string]any{
		"username": "musteri1", "password": "123456", "role": "customer", "full_name": "Mehmet Yılmaz",
	})
	s.register(map[string]any{
		"username": "musteri2", "password": "123456", "role": "customer", "full_name": "Zeynep Kaya",
	})

	ahmet := s.login("kuafor_ahmet")
	mehmet := s.login("musteri1")
	zeynep := s.login("musteri2")
	admin := s.login("admin")

	// providers are public
	w := s.do(http.MethodGet, "/api/providers?category=Tümü", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	providers := decode[[]map[string]any](t, w)
	require.Len(t, providers, 1)
	assert.Equal(t, "Ahmet Makas", providers[0]["full_name"])

	// first booking wins
	w = s.do(http.MethodPost, "/api/appointments", mehmet.Token, map[string]any{
		"provider_id": ahmet.User.ID, "customer_id": mehmet.User.ID,
		"date": "2024-03-04", "time": "10:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[struct {
		Message     string             `json:"message"`
		Appointment models.Appointment `json:"appointment"`
	}](t, w)
	assert.Equal(t, "Randevu talebi oluşturuldu! Onay bekleniyor.", created.Message)
	assert.Equal(t, "pending", created.Appointment.Status)
	assert.Equal(t, "2024-03-04", created.Appointment.DateString())
	assert.Contains(t, w.Body.String(), `"date":"2024-03-04"`)

	// second booking of the same slot
	w = s.do(http.MethodPost, "/api/appointments", zeynep.Token, map[string]any{
		"provider_id": ahmet.User.ID, "date": "2024-03-04", "time": "10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decode[errorBody](t, w)
	assert.Equal(t, "slot_taken", e.Code)
	assert.Equal(t, "Bu saat maalesef dolu.", e.Message)

	// provider approves
	w = s.do(http.MethodPut, "/api/appointments/"+itoa(created.Appointment.ID)+"/status", ahmet.Token,
		map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Randevu approved olarak güncellendi.")

	// later changes overwrite
	w = s.do(http.MethodPut, "/api/appointments/"+itoa(created.Appointment.ID)+"/status", ahmet.Token,
		map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		Appointment map[string]any `json:"appointment"`
	}](t, w)
	assert.Equal(t, "rejected", updated.Appointment["status"])
	assert.Equal(t, "2024-03-04", updated.Appointment["date"])

	// a rejected appointment keeps its slot
	w = s.do(http.MethodPost, "/api/appointments", zeynep.Token, map[string]any{
		"provider_id": ahmet.User.ID, "date": "2024-03-04", "time": "10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "slot_taken", decode[errorBody](t, w).Code)

	// customer dashboard
	w = s.do(http.MethodGet, "/api/appointments/"+itoa(mehmet.User.ID)+"?role=customer", mehmet.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 1)
	assert.Equal(t, "rejected", rows[0]["status"])
	assert.Equal(t, "Ahmet Makas", rows[0]["provider_name"])
	assert.Equal(t, "Kuaför", rows[0]["category"])
	assert.Equal(t, "2024-03-04", rows[0]["date"])

	// someone else's dashboard
	w = s.do(http.MethodGet, "/api/appointments/"+itoa(mehmet.User.ID)+"?role=customer", zeynep.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin stats
	w = s.do(http.MethodGet, "/api/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"users": 4,
		"appointments": 1,
		"categories": [{"category": "Kuaför", "count": 1}],
		"popular": [{"full_name": "Ahmet Makas", "count": 1}]
	}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/admin/stats", mehmet.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/admin/audit-logs", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": [], "page": 1, "limit": 50, "total": 0}`, w.Body.String())
}

func TestStrictStatusPolicy(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyStrict)

	s.register(map[string]any{
		"username": "kuafor_ahmet", "password": "123456", "role": "provider", "full_name": "Ahmet Makas",
	})
	s.register(map[string]any{
		"username": "berber_kemal", "password": "123456", "role": "provider", "full_name": "Kemal Traş",
	})
	s.register(map[string]any{
		"username": "musteri1", "password": "123456", "role": "customer", "full_name": "Mehmet Yılmaz",
	})
	ahmet := s.login("kuafor_ahmet")
	kemal := s.login("berber_kemal")
	mehmet := s.login("musteri1")

	w := s.do(http.MethodPost, "/api/appointments", mehmet.Token, map[string]any{
		"provider_id": ahmet.User.ID, "date": "2024-03-04", "time": "10:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[struct {
		Appointment models.Appointment `json:"appointment"`
	}](t, w)
	path := "/api/appointments/" + itoa(created.Appointment.ID) + "/status"

	w = s.do(http.MethodPut, path, kemal.Token, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, path, ahmet.Token, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, path, ahmet.Token, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", decode[errorBody](t, w).Code)
}

func TestWorkingDaysEndpoints(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyStrict)

	s.register(map[string]any{
		"username": "diyetisyen_ayse", "password": "123456", "role": "provider",
		"full_name": "Ayşe Sağlık", "category": "Diyetisyen", "working_days": []string{"Pazartesi"},
	})
	s.register(map[string]any{
		"username": "musteri1", "password": "123456", "role": "customer", "full_name": "Mehmet Yılmaz",
	})
	ayse := s.login("diyetisyen_ayse")
	mehmet := s.login("musteri1")

	w := s.do(http.MethodGet, "/api/me/working-days", ayse.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"working_days": ["Pazartesi"]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/appointments", mehmet.Token, map[string]any{
		"provider_id": ayse.User.ID, "date": "2024-03-05", "time": "10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decode[errorBody](t, w)
	assert.Equal(t, "provider_not_working_that_day", e.Code)
	assert.Contains(t, e.Message, "Salı")

	w = s.do(http.MethodPut, "/api/me/working-days", ayse.Token, map[string]any{
		"working_days": []string{"Pazartesi", "sali"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"working_days": ["Pazartesi", "Salı"]}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/appointments", mehmet.Token, map[string]any{
		"provider_id": ayse.User.ID, "date": "2024-03-05", "time": "10:00",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPut, "/api/me/working-days", ayse.Token, map[string]any{
		"working_days": []string{"Someday"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/me/working-days", mehmet.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyStrict)

	s.register(map[string]any{
		"username": "musteri1", "password": "123456", "role": "customer", "full_name": "Mehmet Yılmaz",
	})

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "Musteri1", "password": "123456", "role": "customer", "full_name": "Başka Biri",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username_taken", decode[errorBody](t, w).Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "hacker", "password": "123456", "role": "admin", "full_name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "musteri1", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Hatalı kullanıcı adı veya şifre.", decode[errorBody](t, w).Message)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "nobody", "password": "123456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mehmet := s.login("musteri1")
	assert.Equal(t, "Mehmet Yılmaz", mehmet.User.FullName)
	assert.NotContains(t, s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "musteri1", "password": "123456",
	}).Body.String(), "password")

	w = s.do(http.MethodGet, "/api/me", mehmet.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"musteri1"`)

	w = s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAvatarDisabledWithoutStorage(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyStrict)

	s.register(map[string]any{
		"username": "berber_kemal", "password": "123456", "role": "provider", "full_name": "Kemal Traş",
	})
	kemal := s.login("berber_kemal")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("not really a png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/me/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+kemal.Token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "feature_disabled", decode[errorBody](t, w).Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.StatusPolicyStrict)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
