package controllers

import (
	"errors"
	"log"

	"argubot/models"
	"argubot/services"

	"github.com/gin-gonic/gin"
)

var registry *services.Registry

// InitArgumentController wires the session registry used by the handlers.
func InitArgumentController(r *services.Registry) {
	registry = r
}

type StartRequest struct {
	Message string `json:"message" binding:"required"`
}

type ArgumentRequest struct {
	SessionId string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type EndRequest struct {
	SessionId string `json:"sessionId" binding:"required"`
}

type ArgumentResponse struct {
	SessionId      string        `json:"sessionId"`
	BotResponse    string        `json:"botResponse"`
	UserScore      int           `json:"userScore"`
	BotScore       int           `json:"botScore"`
	TimeRemaining  int           `json:"timeRemaining"`
	GameEnded      bool          `json:"gameEnded"`
	Sources        []models.Fact `json:"sources"`
	JudgeReasoning string        `json:"judgeReasoning,omitempty"`
	StatusUpdate   string        `json:"statusUpdate,omitempty"`
}

type EndResponse struct {
	SessionId   string `json:"sessionId"`
	FinalReport string `json:"finalReport"`
	Verdict     string `json:"verdict"`
	UserScore   int    `json:"userScore"`
	BotScore    int    `json:"botScore"`
	TotalTime   int    `json:"totalTime"`
}

type StatusResponse struct {
	SessionId     string `json:"sessionId"`
	State         string `json:"state"`
	UserScore     int    `json:"userScore"`
	BotScore      int    `json:"botScore"`
	TimeRemaining int    `json:"timeRemaining"`
}

// StartSession creates a session and opens the argument with the user's
// first statement.
func StartSession(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	session := registry.Create()
	result, err := session.Start(c.Request.Context(), req.Message)
	if err != nil {
		registry.Remove(session.ID())
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, ArgumentResponse{
		SessionId:     session.ID(),
		BotResponse:   result.BotText,
		UserScore:     result.UserScore,
		BotScore:      result.BotScore,
		TimeRemaining: result.Remaining,
		Sources:       sources(result.Facts),
		StatusUpdate:  services.StatusLine(result.UserScore, result.BotScore, result.Remaining),
	})
}

// SendArgument submits one user argument to an active session.
func SendArgument(c *gin.Context) {
	var req ArgumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	session, ok := lookupSession(c, req.SessionId)
	if !ok {
		return
	}

	result, err := session.Submit(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("Submit failed for session %s: %v", session.ID(), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, ArgumentResponse{
		SessionId:      session.ID(),
		BotResponse:    result.BotText,
		UserScore:      result.UserScore,
		BotScore:       result.BotScore,
		TimeRemaining:  result.Remaining,
		GameEnded:      result.GameEnded,
		Sources:        sources(result.Facts),
		JudgeReasoning: result.JudgeReasoning,
		StatusUpdate:   services.StatusLine(result.UserScore, result.BotScore, result.Remaining),
	})
}

// EndSession closes the session and returns the persona report. Idempotent:
// repeating the call replays the cached result.
func EndSession(c *gin.Context) {
	var req EndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	session, ok := lookupSession(c, req.SessionId)
	if !ok {
		return
	}

	result, err := session.End(c.Request.Context())
	if err != nil {
		log.Printf("End failed for session %s: %v", session.ID(), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, EndResponse{
		SessionId:   session.ID(),
		FinalReport: result.Report,
		Verdict:     result.Verdict,
		UserScore:   result.UserScore,
		BotScore:    result.BotScore,
		TotalTime:   result.TotalSeconds,
	})
}

// SessionStatus reports scores and remaining time without advancing the game.
func SessionStatus(c *gin.Context) {
	session, ok := lookupSession(c, c.Query("sessionId"))
	if !ok {
		return
	}

	status := session.Status()
	c.JSON(200, StatusResponse{
		SessionId:     session.ID(),
		State:         string(status.State),
		UserScore:     status.UserScore,
		BotScore:      status.BotScore,
		TimeRemaining: status.Remaining,
	})
}

// RemoveSession evicts a session from the registry.
func RemoveSession(c *gin.Context) {
	session, ok := lookupSession(c, c.Query("sessionId"))
	if !ok {
		return
	}

	registry.Remove(session.ID())
	c.Status(204)
}

func lookupSession(c *gin.Context, id string) (*services.GameSession, bool) {
	session, err := registry.Get(id)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return nil, false
	}
	return session, true
}

// sources normalizes a nil fact list to an empty JSON array.
func sources(facts []models.Fact) []models.Fact {
	if facts == nil {
		return []models.Fact{}
	}
	return facts
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return 404
	case errors.Is(err, services.ErrSessionNotStarted),
		errors.Is(err, services.ErrSessionAlreadyStarted),
		errors.Is(err, services.ErrSessionEnded):
		return 409
	default:
		return 502
	}
}
