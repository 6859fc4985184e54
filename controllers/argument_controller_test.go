package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"argubot/models"
	"argubot/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedResponder answers reply, judge, and persona prompts with canned
// output, and can be told to fail reply generation.
type scriptedResponder struct {
	replyErr error
}

func (s *scriptedResponder) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "impartial debate judge"):
		return `{"winner": "user", "reasoning": "Stronger case."}`, nil
	case strings.Contains(prompt, "PERSONALITY ROAST REPORT"):
		return "🎭 PERSONALITY ROAST REPORT 🎭\n🏆 FINAL VERDICT: relentless.", nil
	default:
		if s.replyErr != nil {
			return "", s.replyErr
		}
		return "I dare say, a most preposterous claim.", nil
	}
}

type emptyFinder struct{}

func (emptyFinder) Search(context.Context, string) ([]models.Fact, error) {
	return nil, nil
}

func setupTestRouter(responder services.Responder) *gin.Engine {
	gin.SetMode(gin.TestMode)

	reg := services.NewRegistry(services.GameConfig{
		Duration:      300 * time.Second,
		HistoryWindow: 6,
	}, responder, emptyFinder{})
	InitArgumentController(reg)

	router := gin.New()
	argument := router.Group("/argument")
	argument.POST("/start", StartSession)
	argument.POST("/send", SendArgument)
	argument.POST("/end", EndSession)
	argument.GET("/status", SessionStatus)
	argument.DELETE("/remove", RemoveSession)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStartSendStatusEndRoundTrip(t *testing.T) {
	router := setupTestRouter(&scriptedResponder{})

	w := doJSON(t, router, http.MethodPost, "/argument/start", `{"message": "Pineapple belongs on pizza"}`)
	require.Equal(t, 200, w.Code)

	var start ArgumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))
	require.NotEmpty(t, start.SessionId)
	assert.NotEmpty(t, start.BotResponse)
	assert.Equal(t, 0, start.UserScore)
	assert.Equal(t, 0, start.BotScore)
	assert.Equal(t, 300, start.TimeRemaining)
	assert.Empty(t, start.JudgeReasoning)
	assert.NotEmpty(t, start.StatusUpdate)

	w = doJSON(t, router, http.MethodPost, "/argument/send",
		`{"sessionId": "`+start.SessionId+`", "message": "It is objectively delicious"}`)
	require.Equal(t, 200, w.Code)

	var send ArgumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &send))
	assert.Equal(t, 1, send.UserScore)
	assert.Equal(t, 0, send.BotScore)
	assert.Equal(t, "Stronger case.", send.JudgeReasoning)
	assert.False(t, send.GameEnded)

	w = doJSON(t, router, http.MethodGet, "/argument/status?sessionId="+start.SessionId, "")
	require.Equal(t, 200, w.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "active", status.State)
	assert.Equal(t, 1, status.UserScore)

	endBody := `{"sessionId": "` + start.SessionId + `"}`
	w = doJSON(t, router, http.MethodPost, "/argument/end", endBody)
	require.Equal(t, 200, w.Code)

	var end EndResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &end))
	assert.Contains(t, end.FinalReport, "PERSONALITY ROAST REPORT")
	assert.Equal(t, 1, end.UserScore)
	assert.Contains(t, end.Verdict, "CONGRATULATIONS")

	// End is idempotent over HTTP as well.
	w = doJSON(t, router, http.MethodPost, "/argument/end", endBody)
	require.Equal(t, 200, w.Code)
	var again EndResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, end, again)
}

func TestUnknownSessionIs404(t *testing.T) {
	router := setupTestRouter(&scriptedResponder{})

	for _, call := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/argument/send", `{"sessionId": "nope", "message": "hi"}`},
		{http.MethodPost, "/argument/end", `{"sessionId": "nope"}`},
		{http.MethodGet, "/argument/status?sessionId=nope", ""},
		{http.MethodDelete, "/argument/remove?sessionId=nope", ""},
	} {
		w := doJSON(t, router, call.method, call.path, call.body)
		assert.Equal(t, 404, w.Code, "%s %s", call.method, call.path)
	}
}

func TestMissingFieldsAre400(t *testing.T) {
	router := setupTestRouter(&scriptedResponder{})

	w := doJSON(t, router, http.MethodPost, "/argument/start", `{}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, router, http.MethodPost, "/argument/send", `{"message": "no session id"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, router, http.MethodPost, "/argument/end", `{}`)
	assert.Equal(t, 400, w.Code)
}

func TestSendReplyFailureIs502(t *testing.T) {
	responder := &scriptedResponder{}
	router := setupTestRouter(responder)

	w := doJSON(t, router, http.MethodPost, "/argument/start", `{"message": "opener"}`)
	require.Equal(t, 200, w.Code)
	var start ArgumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))

	sendBody := `{"sessionId": "` + start.SessionId + `", "message": "point"}`

	responder.replyErr = errors.New("model down")
	w = doJSON(t, router, http.MethodPost, "/argument/send", sendBody)
	assert.Equal(t, 502, w.Code)

	// The session stays usable once the responder recovers.
	responder.replyErr = nil
	w = doJSON(t, router, http.MethodPost, "/argument/send", sendBody)
	assert.Equal(t, 200, w.Code)
}

func TestRemoveSessionEvicts(t *testing.T) {
	router := setupTestRouter(&scriptedResponder{})

	w := doJSON(t, router, http.MethodPost, "/argument/start", `{"message": "opener"}`)
	require.Equal(t, 200, w.Code)
	var start ArgumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))

	w = doJSON(t, router, http.MethodDelete, "/argument/remove?sessionId="+start.SessionId, "")
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, router, http.MethodGet, "/argument/status?sessionId="+start.SessionId, "")
	assert.Equal(t, 404, w.Code)
}
