package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/store"
)

type englishOnly struct{}

func (englishOnly) Detect(string) (string, float64) { return "en", 0.9 }

func newTestServer(t *testing.T, apiKey string) *server.Hertz {
	t.Helper()
	engine, err := interview.New(interview.DefaultConfig(), interview.Deps{Detector: englishOnly{}}, nil)
	require.NoError(t, err)

	mem := store.NewMemory()
	svc, err := screening.New(engine, screening.Options{
		Sessions: mem.SessionRepo(),
		Records:  mem.RecordRepo(),
	}, nil)
	require.NoError(t, err)

	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	New(svc, Config{APIKey: apiKey}, nil).Register(h)
	return h
}

func jsonBody(t *testing.T, v any) *ut.Body {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return &ut.Body{Body: bytes.NewReader(b), Len: len(b)}
}

func startSession(t *testing.T, h *server.Hertz, headers ...ut.Header) TurnResponse {
	t.Helper()
	resp := ut.PerformRequest(h.Engine, http.MethodPost, "/api/v1/sessions", nil, headers...)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var out TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func sendMessage(t *testing.T, h *server.Hertz, id, text string) TurnResponse {
	t.Helper()
	resp := ut.PerformRequest(h.Engine, http.MethodPost, "/api/v1/sessions/"+id+"/messages",
		jsonBody(t, MessageRequest{Text: text}),
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out TurnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, "secret")

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestInterviewOverHTTP(t *testing.T) {
	h := newTestServer(t, "")

	started := startSession(t, h)
	require.NotEmpty(t, started.SessionID)
	assert.Contains(t, started.Text, "Welcome to TalentScout")
	assert.Equal(t, interview.KindAcknowledge, started.Intent.Kind)
	assert.Empty(t, started.Warning)

	id := started.SessionID
	out := sendMessage(t, h, id, "hello")
	assert.Equal(t, interview.KindPromptField, out.Intent.Kind)
	assert.Equal(t, "name", string(out.Intent.Field))

	out = sendMessage(t, h, id, "My name is Priya Raman, reach me at priya@example.com")
	assert.Equal(t, "phone", string(out.Intent.Field))
	assert.Contains(t, out.Text, "phone number")

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var sess interview.Session
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &sess))
	assert.Equal(t, "Priya Raman", sess.Candidate.Name)
	assert.Equal(t, interview.StageCollectingInfo, sess.Stage)

	out = sendMessage(t, h, id, "bye")
	assert.True(t, out.Ended)
	assert.Equal(t, interview.KindConclude, out.Intent.Kind)

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/sessions/"+id+"/record", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var rec record.Record
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rec))
	assert.Equal(t, "priya@example.com", rec.Email)
	assert.True(t, rec.Ended)
	assert.False(t, rec.Completed)
	assert.Equal(t, interview.EndExitKeyword, rec.EndReason)

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/sessions/"+id+"/record?format=yaml", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var fromYAML record.Record
	require.NoError(t, yaml.Unmarshal(resp.Body.Bytes(), &fromYAML))
	assert.Equal(t, "Priya Raman", fromYAML.Name)

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/sessions?ended=true", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var list struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, id, list.Sessions[0].ID)

	resp = ut.PerformRequest(h.Engine, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRequestErrors(t *testing.T) {
	h := newTestServer(t, "")
	id := startSession(t, h).SessionID

	tests := []struct {
		name   string
		method string
		path   string
		body   *ut.Body
		want   int
	}{
		{"unknown session message", http.MethodPost, "/api/v1/sessions/nope/messages", jsonBody(t, MessageRequest{Text: "hi"}), http.StatusNotFound},
		{"unknown session record", http.MethodGet, "/api/v1/sessions/nope/record", nil, http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/v1/sessions/" + id + "/messages", &ut.Body{Body: bytes.NewReader([]byte("{")), Len: 1}, http.StatusBadRequest},
		{"oversized text", http.MethodPost, "/api/v1/sessions/" + id + "/messages", jsonBody(t, MessageRequest{Text: string(make([]byte, maxUtterance+1))}), http.StatusRequestEntityTooLarge},
		{"bad record format", http.MethodGet, "/api/v1/sessions/" + id + "/record?format=xml", nil, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/v1/sessions?limit=-1", nil, http.StatusBadRequest},
		{"bad ended", http.MethodGet, "/api/v1/sessions?ended=maybe", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ut.PerformRequest(h.Engine, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, resp.Code, resp.Body.String())
		})
	}
}

func TestEmptyMessageIsNotAnError(t *testing.T) {
	h := newTestServer(t, "")
	id := startSession(t, h).SessionID
	sendMessage(t, h, id, "hello")

	out := sendMessage(t, h, id, "   ")
	assert.Equal(t, interview.KindPromptField, out.Intent.Kind)
	assert.Contains(t, out.Text, "I didn't quite catch that.")
}

func TestAPIKey(t *testing.T) {
	h := newTestServer(t, "secret")

	resp := ut.PerformRequest(h.Engine, http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ut.PerformRequest(h.Engine, http.MethodPost, "/api/v1/sessions", nil,
		ut.Header{Key: "Authorization", Value: "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	started := startSession(t, h, ut.Header{Key: "Authorization", Value: "Bearer secret"})
	assert.NotEmpty(t, started.SessionID)
}
