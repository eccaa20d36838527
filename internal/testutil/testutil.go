// Package testutil wires a complete API over the in-memory store for
// end-to-end handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gymAPI/handlers"
	"gymAPI/internal/auth"
	"gymAPI/internal/notification"
	"gymAPI/internal/store"
	"gymAPI/services"
)

const TestSecret = "test-secret-key-for-testing-only"

// App is a running API backed by the memory store.
type App struct {
	Router   *mux.Router
	DB       *store.MemoryDatabase
	Tokens   *auth.TokenIssuer
	Services handlers.Services
}

// Envelope mirrors the JSON response wrapper.
type Envelope struct {
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

// NewApp builds a fresh app. The notification dispatcher is stopped when
// the test ends.
func NewApp(t *testing.T) *App {
	t.Helper()

	logger := zap.NewNop()
	db := store.NewMemory()
	require.NoError(t, db.EnsureIndexes(context.Background(), store.Indexes))

	tokens := auth.NewTokenIssuer(TestSecret, "gym-api-test", time.Hour)

	dispatcher := services.NewNotificationDispatcher(logger, 2, 16, notification.NewLogSender(logger))
	t.Cleanup(dispatcher.Stop)
	notifications := services.NewNotificationService(dispatcher)

	badges := services.NewBadgeService(db, notifications, logger)
	gyms := services.NewGymService(db, notifications, logger)
	challenges := services.NewChallengeService(db, notifications, logger)
	participations := services.NewParticipationService(db, badges, notifications, logger)

	svc := handlers.Services{
		Accounts:       services.NewAccountService(db, tokens, logger),
		Gyms:           gyms,
		Exercises:      services.NewExerciseService(db, logger),
		Challenges:     challenges,
		Participations: participations,
		Badges:         badges,
		Stats:          services.NewStatsService(db, gyms, challenges, badges, participations, logger),
	}

	router := handlers.NewRouter(svc, handlers.RouterConfig{
		Store:       db,
		Tokens:      tokens,
		MetricsUser: "metrics",
		MetricsPass: "metrics",
		PprofSecret: "pprof",
		Logger:      logger,
	})

	return &App{Router: router, DB: db, Tokens: tokens, Services: svc}
}

// Do sends a request through the router. body may be nil, a string or any
// value that marshals to JSON.
func (a *App) Do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

// Register creates an account through the API and returns its id and token.
func (a *App) Register(t *testing.T, email, role string) (string, string) {
	t.Helper()

	rr := a.Do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var out struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	DecodeData(t, rr, &out)
	return out.User.ID, out.Token
}

// ReadEnvelope decodes the response wrapper.
func ReadEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

// DecodeData decodes the data field of the response into out.
func DecodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()

	env := ReadEnvelope(t, rr)
	require.NotEmpty(t, env.Data, fmt.Sprintf("no data in response: %s", rr.Body.String()))
	require.NoError(t, json.Unmarshal(env.Data, out))
}
