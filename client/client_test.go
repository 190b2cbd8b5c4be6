package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := NewMemoryStore()
	_ = store.Set("token-abc")
	c := New(server.URL, store)

	err := c.Get(context.Background(), "/api/exercises", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

func TestClient_NoBearerWhenStoreEmpty(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryStore())
	err := c.Get(context.Background(), "/api/exercises", nil)
	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_MessageExtractionPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "field error wins",
			body: `{"errors":{"email":["Email already taken"]},"message":"Validation failed"}`,
			want: "Email already taken",
		},
		{
			name: "top-level message",
			body: `{"message":"Server error"}`,
			want: "Server error",
		},
		{
			name: "empty body falls back",
			body: ``,
			want: FallbackErrorMessage,
		},
		{
			name: "malformed body falls back",
			body: `<html>nope</html>`,
			want: FallbackErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			notifier := &recordingNotifier{}
			c := New(server.URL, NewMemoryStore(), WithNotifier(notifier))

			err := c.Get(context.Background(), "/api/exercises", nil)
			assert.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.want, notifier.lastError())
		})
	}
}

func TestClient_ServerErrorsStayGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"pq: duplicate key value violates unique constraint"}`))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryStore())
	err := c.Get(context.Background(), "/api/exercises", nil)

	assert.Error(t, err)
	assert.Equal(t, FallbackErrorMessage, err.Error())
}

func TestClient_401ClearsStoreAndFiresHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized","code":"UNAUTHORIZED"}`))
	}))
	defer server.Close()

	store := NewMemoryStore()
	_ = store.Set("stale-token")

	expired := 0
	c := New(server.URL, store, WithSessionExpiredHook(func() { expired++ }))

	err := c.Get(context.Background(), "/api/goals", nil)
	assert.Error(t, err)

	token, _ := store.Get()
	assert.Empty(t, token)
	assert.Equal(t, 1, expired)

	// A second 401 with an already-empty store must not fire the hook again.
	err = c.Get(context.Background(), "/api/goals", nil)
	assert.Error(t, err)
	assert.Equal(t, 1, expired)
}

func TestClient_401ExemptionsKeepSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Current password is incorrect","code":"INVALID_CURRENT_PASSWORD"}`))
	}))
	defer server.Close()

	t.Run("change-password is exempt", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("live-token")
		expired := 0
		c := New(server.URL, store, WithSessionExpiredHook(func() { expired++ }))

		err := c.ChangePassword(context.Background(), "wrong", "new-password")
		assert.Error(t, err)

		token, _ := store.Get()
		assert.Equal(t, "live-token", token)
		assert.Zero(t, expired)
	})

	t.Run("KeepSessionOn401 opts a call out", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set("live-token")
		expired := 0
		c := New(server.URL, store, WithSessionExpiredHook(func() { expired++ }))

		err := c.Get(context.Background(), "/api/account/subscription", nil, KeepSessionOn401())
		assert.Error(t, err)

		token, _ := store.Get()
		assert.Equal(t, "live-token", token)
		assert.Zero(t, expired)
	})
}

func TestClient_SuccessNoticeAndSilent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/fail" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL, NewMemoryStore(), WithNotifier(notifier))

	err := c.Post(context.Background(), "/api/ok", nil, nil, WithSuccessNotice("Saved"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"Saved"}, notifier.successes)

	err = c.Get(context.Background(), "/api/fail", nil, Silent())
	assert.Error(t, err)
	assert.Empty(t, notifier.errors)
}

func TestClient_ErrorIsAlwaysReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Validation failed",
			"code":    "VALIDATION_ERROR",
			"errors":  map[string][]string{"age": {"must be a number"}},
		})
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL, NewMemoryStore(), WithNotifier(notifier))

	err := c.Post(context.Background(), "/api/goals", map[string]string{"age": "abc"}, nil)

	// The notification fired AND the caller still gets the typed error
	// for inline form handling.
	assert.Equal(t, "must be a number", notifier.lastError())
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, []string{"must be a number"}, apiErr.Errors["age"])
}

func TestClient_RequestInterceptorOrdering(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Trace")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, NewMemoryStore(),
		WithRequestInterceptor(func(req *http.Request) error {
			req.Header.Set("X-Trace", "first")
			return nil
		}),
		WithRequestInterceptor(func(req *http.Request) error {
			req.Header.Set("X-Trace", req.Header.Get("X-Trace")+",second")
			return nil
		}),
	)

	err := c.Get(context.Background(), "/api/exercises", nil)
	assert.NoError(t, err)
	assert.Equal(t, "first,second", gotHeader)
}
