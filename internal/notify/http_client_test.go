package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "sportsync/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_ScheduleAt(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got scheduleRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/notifications/schedule", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		}))
		defer server.Close()

		at := time.Date(2024, 12, 16, 17, 0, 0, 0, time.UTC)
		payload := Payload{UserID: 1, EventID: 7, EventTitle: "Friday Football", Body: "Your event Friday Football is coming up!"}

		client := NewHTTPClient(server.URL)
		require.NoError(t, client.ScheduleAt(ctx, at, payload))

		assert.True(t, at.Equal(got.At))
		assert.Equal(t, payload, got.Payload)
	})

	t.Run("Failed - gateway error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL)
		err := client.ScheduleAt(ctx, time.Now(), Payload{UserID: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestHTTPClient_CancelAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got map[string]int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/notifications/cancel-all", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL)
		require.NoError(t, client.CancelAll(ctx, 42))

		assert.Equal(t, 42, got["userId"])
	})

	t.Run("Failed - collaborator unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewHTTPClient(server.URL)
		err := client.CancelAll(ctx, 42)

		assert.ErrorIs(t, err, apperrors.ErrNetwork)
	})
}
