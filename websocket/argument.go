package websocket

import (
	"log"
	"net/http"

	"argubot/models"
	"argubot/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var registry *services.Registry

// InitArgumentSocket wires the session registry used by the socket handler.
func InitArgumentSocket(r *services.Registry) {
	registry = r
}

// Message types for the live-play socket
const (
	MessageTypeStart  = "START"
	MessageTypeArgue  = "ARGUE"
	MessageTypeEnd    = "END"
	MessageTypeUpdate = "GAME_UPDATE"
	MessageTypeReport = "FINAL_REPORT"
	MessageTypeError  = "ERROR"
)

// ClientMessage is one inbound frame from the player.
type ClientMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// GameUpdate is pushed after start and after every judged exchange.
type GameUpdate struct {
	Type           string        `json:"type"`
	SessionId      string        `json:"sessionId"`
	BotResponse    string        `json:"botResponse"`
	UserScore      int           `json:"userScore"`
	BotScore       int           `json:"botScore"`
	TimeRemaining  int           `json:"timeRemaining"`
	GameEnded      bool          `json:"gameEnded"`
	Sources        []models.Fact `json:"sources,omitempty"`
	JudgeReasoning string        `json:"judgeReasoning,omitempty"`
	StatusUpdate   string        `json:"statusUpdate,omitempty"`
}

// FinalReport is pushed once the player ends the game over the socket.
type FinalReport struct {
	Type        string `json:"type"`
	SessionId   string `json:"sessionId"`
	FinalReport string `json:"finalReport"`
	Verdict     string `json:"verdict"`
	UserScore   int    `json:"userScore"`
	BotScore    int    `json:"botScore"`
	TotalTime   int    `json:"totalTime"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ArgumentHandler plays a full argument game over one websocket connection.
// The session it creates is evicted when the connection closes.
func ArgumentHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	var session *services.GameSession
	defer func() {
		if session != nil {
			registry.Remove(session.ID())
		}
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Websocket read error: %v", err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeStart:
			if session != nil {
				sendError(conn, "Game already started on this connection")
				continue
			}
			session = registry.Create()
			result, err := session.Start(ctx, msg.Content)
			if err != nil {
				registry.Remove(session.ID())
				session = nil
				sendError(conn, err.Error())
				continue
			}
			writeJSON(conn, GameUpdate{
				Type:          MessageTypeUpdate,
				SessionId:     session.ID(),
				BotResponse:   result.BotText,
				UserScore:     result.UserScore,
				BotScore:      result.BotScore,
				TimeRemaining: result.Remaining,
				Sources:       result.Facts,
				StatusUpdate:  services.StatusLine(result.UserScore, result.BotScore, result.Remaining),
			})

		case MessageTypeArgue:
			if session == nil {
				sendError(conn, "No game in progress; send a START frame first")
				continue
			}
			result, err := session.Submit(ctx, msg.Content)
			if err != nil {
				sendError(conn, err.Error())
				continue
			}
			writeJSON(conn, GameUpdate{
				Type:           MessageTypeUpdate,
				SessionId:      session.ID(),
				BotResponse:    result.BotText,
				UserScore:      result.UserScore,
				BotScore:       result.BotScore,
				TimeRemaining:  result.Remaining,
				GameEnded:      result.GameEnded,
				Sources:        result.Facts,
				JudgeReasoning: result.JudgeReasoning,
				StatusUpdate:   services.StatusLine(result.UserScore, result.BotScore, result.Remaining),
			})

		case MessageTypeEnd:
			if session == nil {
				sendError(conn, "No game in progress")
				continue
			}
			result, err := session.End(ctx)
			if err != nil {
				sendError(conn, err.Error())
				continue
			}
			writeJSON(conn, FinalReport{
				Type:        MessageTypeReport,
				SessionId:   session.ID(),
				FinalReport: result.Report,
				Verdict:     result.Verdict,
				UserScore:   result.UserScore,
				BotScore:    result.BotScore,
				TotalTime:   result.TotalSeconds,
			})

		default:
			sendError(conn, "Unknown message type: "+msg.Type)
		}
	}
}

func sendError(conn *websocket.Conn, text string) {
	writeJSON(conn, errorMessage{Type: MessageTypeError, Error: text})
}

func writeJSON(conn *websocket.Conn, payload interface{}) {
	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("Websocket write error: %v", err)
	}
}
