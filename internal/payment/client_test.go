package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "sportsync/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got confirmRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/payments/confirm", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(confirmResponse{Success: true})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL)
		err := client.Confirm(ctx, 7, 200)

		require.NoError(t, err)
		assert.Equal(t, 7, got.EventID)
		assert.Equal(t, 200, got.UserID)
	})

	t.Run("Failed - collaborator declines", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL)
		err := client.Confirm(ctx, 7, 200)

		assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
	})

	t.Run("Failed - 2xx with success false", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(confirmResponse{Success: false, Message: "card declined"})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL)
		err := client.Confirm(ctx, 7, 200)

		assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
	})

	t.Run("Failed - collaborator unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // 伺服器關掉模擬連不上

		client := NewHTTPClient(server.URL)
		err := client.Confirm(ctx, 7, 200)

		assert.ErrorIs(t, err, apperrors.ErrNetwork)
	})
}
