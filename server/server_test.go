package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gqlfmt/format"
	"gqlfmt/server"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.New(nil, format.PrettifyOptions, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

type testConfig struct {
	name     string
	body     string
	status   int
	expected any
}

func TestPrettify(t *testing.T) {
	ts := newTestServer(t)

	tests := []testConfig{
		{
			name:     "defaults",
			body:     `{"source": "{ a }"}`,
			status:   http.StatusOK,
			expected: server.PrettifyResponse{Formatted: "{\n  a\n}\n"},
		},
		{
			name:     "options override defaults",
			body:     `{"source": "{ a b }", "options": {"pretty": false}}`,
			status:   http.StatusOK,
			expected: server.PrettifyResponse{Formatted: "{a,b}"},
		},
		{
			name:     "indentation",
			body:     `{"source": "{ a }", "options": {"indentation": "\t"}}`,
			status:   http.StatusOK,
			expected: server.PrettifyResponse{Formatted: "{\n\ta\n}\n"},
		},
		{
			name:     "syntax error",
			body:     `{"source": "{ $ }"}`,
			status:   http.StatusUnprocessableEntity,
			expected: server.ErrorResponse{Error: "Unexpected token: $", Line: 1, Column: 3},
		},
		{
			name:     "missing source",
			body:     `{}`,
			status:   http.StatusBadRequest,
			expected: server.ErrorResponse{Error: "source is required"},
		},
		{
			name:     "line length out of range",
			body:     `{"source": "{ a }", "options": {"maxLineLength": 5000}}`,
			status:   http.StatusBadRequest,
			expected: server.ErrorResponse{Error: "maxLineLength failed the max=1000 check"},
		},
		{
			name:     "malformed body",
			body:     `{"source": `,
			status:   http.StatusBadRequest,
			expected: server.ErrorResponse{Error: "invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/prettify", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			switch expected := tt.expected.(type) {
			case server.PrettifyResponse:
				var got server.PrettifyResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, expected, got)
			case server.ErrorResponse:
				var got server.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, expected, got)
			}
		})
	}
}

func TestPrettifyContentType(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/prettify", "text/plain", strings.NewReader(`{"source": "{ a }"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := httptest.NewServer(server.New(nil, format.PrettifyOptions, []string{"http://localhost:3000"}).Handler())
	defer ts.Close()

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+"/prettify", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	assert.Equal(t, "http://localhost:3000", preflight("http://localhost:3000").Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("http://example.com").Header.Get("Access-Control-Allow-Origin"))
}

func TestWebsocket(t *testing.T) {
	ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	type reply struct {
		ID        string `json:"id"`
		Status    int    `json:"status"`
		Formatted string `json:"formatted"`
		Error     string `json:"error"`
		Line      int    `json:"line"`
		Column    int    `json:"column"`
	}

	roundTrip := func(msg string) reply {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		require.NoError(t, conn.SetWriteDeadline(deadline))
		require.NoError(t, conn.SetReadDeadline(deadline))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		var r reply
		require.NoError(t, conn.ReadJSON(&r))
		return r
	}

	assert.Equal(t, reply{ID: "1", Status: http.StatusOK, Formatted: "{\n  a\n}\n"},
		roundTrip(`{"id": "1", "source": "{ a }"}`))
	assert.Equal(t, reply{ID: "2", Status: http.StatusOK, Formatted: "{a}"},
		roundTrip(`{"id": "2", "source": "{ a }", "options": {"pretty": false}}`))
	assert.Equal(t, reply{ID: "3", Status: http.StatusUnprocessableEntity, Error: "Unexpected token: $", Line: 1, Column: 3},
		roundTrip(`{"id": "3", "source": "{ $ }"}`))
	assert.Equal(t, reply{Status: http.StatusBadRequest, Error: "invalid request body"},
		roundTrip(`not json`))
}

func TestListenAndServe(t *testing.T) {
	s := server.New(nil, format.PrettifyOptions, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}

	err := s.ListenAndServe(context.Background(), "127.0.0.1:-1")
	assert.ErrorContains(t, err, "server error")
}

func TestLargeSource(t *testing.T) {
	ts := newTestServer(t)

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(server.PrettifyRequest{Source: "{ " + strings.Repeat("a ", 600_000) + "}"}))

	resp, err := http.Post(ts.URL+"/prettify", "application/json", &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
