package engine

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng, _ := newTestEngine(t, nil)
	h := NewHandler(eng, logging.New("error"))

	r := chi.NewRouter()
	r.Post("/chat/start", h.Start)
	r.Post("/chat/{sessionID}", h.Message)
	r.Post("/chat/{sessionID}/reset", h.Reset)
	r.Get("/chat/{sessionID}", h.Snapshot)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf [8192]byte
	n, _ := resp.Body.Read(buf[:])
	return resp, buf[:n]
}

func TestHandlerStartAndMessage(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/chat/start", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var opening Reply
	require.NoError(t, json.Unmarshal(body, &opening))
	assert.NotEmpty(t, opening.SessionID)
	assert.Equal(t, "greeting", opening.State)

	resp, body = postJSON(t, srv.URL+"/chat/"+opening.SessionID, `{"message":"Sarah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply Reply
	require.NoError(t, json.Unmarshal(body, &reply))
	assert.Equal(t, "collecting_info", reply.State)
	assert.Contains(t, reply.Message, "date of birth")
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/chat/s1", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/chat/s1", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerSnapshotAndReset(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/chat/ghost")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = postJSON(t, srv.URL+"/chat/s2", `{"message":"Sarah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/chat/s2")
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	resp.Body.Close()
	assert.Equal(t, "collecting_info", snap.State)
	assert.Equal(t, "Sarah", snap.Patient.FirstName)

	resp, _ = postJSON(t, srv.URL+"/chat/s2/reset", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/chat/s2")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
