package lambda

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxy_RoutesThroughHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/teams/{teamID}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("X-Seen", r.URL.Query().Get("page"))
		w.Header().Add("X-Seen", r.Header.Get("X-Request-ID"))
		w.Header().Add("X-Seen", r.RemoteAddr)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"team":"` + chi.URLParam(r, "teamID") + `","body":` + string(body) + `}`))
	})

	event := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/teams/4",
		QueryStringParameters: map[string]string{"page": "2"},
		Headers:               map[string]string{"Content-Type": "application/json"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)),
		IsBase64Encoded:       true,
	}
	event.RequestContext.RequestID = "gw-1"
	event.RequestContext.Identity.SourceIP = "10.0.0.1"

	resp, err := NewAdapter(r).Proxy(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"team":"4","body":{"a":1}}`, resp.Body)
	assert.Equal(t, []string{"application/json"}, resp.MultiValueHeaders["Content-Type"])
	assert.Equal(t, []string{"2", "gw-1", "10.0.0.1"}, resp.MultiValueHeaders["X-Seen"])
}

func TestProxy_KeepsClientRequestID(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("X-Request-ID")))
	})

	event := events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/health",
		Headers:    map[string]string{"X-Request-ID": "client-7"},
	}
	event.RequestContext.RequestID = "gw-2"

	resp, err := NewAdapter(h).Proxy(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "client-7", resp.Body)
}

func TestProxy_QueryParamsAndErrors(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		assert.ElementsMatch(t, []string{"a", "b"}, r.URL.Query()["tag"])
		_, _ = w.Write([]byte("ok"))
	})

	resp, err := NewAdapter(h).Proxy(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:                      http.MethodGet,
		Path:                            "/teams",
		MultiValueQueryStringParameters: map[string][]string{"tag": {"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", resp.Body)

	_, err = NewAdapter(h).Proxy(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost, Path: "/teams", Body: "%%%", IsBase64Encoded: true,
	})
	assert.Error(t, err)
}
