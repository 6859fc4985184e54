package models

import "time"

// SessionState tracks where a session is in its lifecycle. Transitions only
// move forward: idle -> active -> expired/ended, expired -> ended.
type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateActive  SessionState = "active"
	StateExpired SessionState = "expired"
	StateEnded   SessionState = "ended"
)

// Turn roles in the transcript
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Turn represents a single utterance in the argument transcript
type Turn struct {
	Role       string    `json:"role"`
	Text       string    `json:"text"`
	CitedFacts []Fact    `json:"citedFacts,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Fact is a short factual snippet with its source, as returned by the
// fact finder. Facts live only for the turn that consumed them.
type Fact struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// JudgeVerdict is the structured outcome of scoring one exchange
type JudgeVerdict struct {
	Winner    string `json:"winner"` // "user", "bot", or "tie"
	Reasoning string `json:"reasoning"`
}
