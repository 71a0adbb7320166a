package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendDigestPostsPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, zap.NewNop())
	err := client.SendDigest(context.Background(), "2 MR batch(es) awaiting estimates")

	assert.NoError(t, err)
	assert.Equal(t, "2 MR batch(es) awaiting estimates", got["text"])
}

func TestSendDigestErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, zap.NewNop())
	err := client.SendDigest(context.Background(), "digest")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
