package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"argubot/models"
)

const (
	// fallbackOpener stands in for the bot's first reply when generation
	// fails during Start. Start never fails on a responder error.
	fallbackOpener = "🔥 Ready to argue? Give me your strongest take and I'll tear it apart. Whatever you believe, I'm about to disagree with it!"

	// expiredReply is the terminal response once the session clock runs out.
	expiredReply = "⏰ Time's up! The argument session has ended."
)

// GameConfig carries the tunable game parameters. Embedding callers may vary
// them; nothing in the state machine hardcodes the defaults.
type GameConfig struct {
	Duration      time.Duration
	HistoryWindow int
}

// DefaultGameConfig matches the classic five-minute, six-turn-window game.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Duration:      300 * time.Second,
		HistoryWindow: 6,
	}
}

// StartResult is returned by GameSession.Start.
type StartResult struct {
	BotText   string
	Facts     []models.Fact
	UserScore int
	BotScore  int
	Remaining int
}

// TurnResult is returned by GameSession.Submit.
type TurnResult struct {
	BotText        string
	UserScore      int
	BotScore       int
	Remaining      int
	Facts          []models.Fact
	JudgeReasoning string
	GameEnded      bool
}

// EndResult is returned by GameSession.End.
type EndResult struct {
	Report       string
	Verdict      string
	UserScore    int
	BotScore     int
	TotalSeconds int
}

// StatusResult is a read-only snapshot of the session.
type StatusResult struct {
	State     models.SessionState
	UserScore int
	BotScore  int
	Remaining int
}

// GameSession owns one timed argument session: its lifecycle state, score
// pair, and transcript. All operations are serialized by the session mutex;
// callers observe state only through returned results.
type GameSession struct {
	mu sync.Mutex

	id         string
	state      models.SessionState
	startedAt  time.Time
	userScore  int
	botScore   int
	transcript []models.Turn

	finalResult *EndResult

	cfg       GameConfig
	responder Responder
	finder    FactFinder
	now       func() time.Time
}

// NewGameSession creates an idle session with the given collaborators.
func NewGameSession(id string, cfg GameConfig, responder Responder, finder FactFinder) *GameSession {
	return &GameSession{
		id:        id,
		state:     models.StateIdle,
		cfg:       cfg,
		responder: responder,
		finder:    finder,
		now:       time.Now,
	}
}

// ID returns the session identifier.
func (s *GameSession) ID() string {
	return s.id
}

// Start activates an idle session with the user's opening statement and
// produces the bot's first rebuttal. No judging happens here. A responder
// failure degrades to a fixed opener; a fact-search failure degrades to an
// empty fact list.
func (s *GameSession) Start(ctx context.Context, message string) (StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.StateIdle {
		return StartResult{}, fmt.Errorf("%w: session %s is %s", ErrSessionAlreadyStarted, s.id, s.state)
	}

	s.state = models.StateActive
	s.startedAt = s.now()

	facts := s.searchFacts(ctx, message)
	userTurn := models.Turn{Role: models.RoleUser, Text: message, Timestamp: s.now()}
	window := recentWindow(append(copyTurns(s.transcript), userTurn), s.cfg.HistoryWindow)

	botText, err := s.responder.Generate(ctx, RenderReply(window, message, facts))
	if err != nil {
		log.Printf("Opening reply generation failed for session %s: %v", s.id, err)
		botText = fallbackOpener
	}

	s.transcript = append(s.transcript, userTurn, models.Turn{
		Role:       models.RoleBot,
		Text:       botText,
		CitedFacts: facts,
		Timestamp:  s.now(),
	})

	return StartResult{
		BotText:   botText,
		Facts:     facts,
		UserScore: s.userScore,
		BotScore:  s.botScore,
		Remaining: int(s.cfg.Duration / time.Second),
	}, nil
}

// Submit processes one user argument: expiry check, fact search, bot reply,
// and judging. The expiry check here is the only place the session moves to
// expired; there is no background timer. A reply-generation failure surfaces
// as an error and leaves the session state, scores, and transcript untouched.
func (s *GameSession) Submit(ctx context.Context, message string) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.StateIdle:
		return TurnResult{}, fmt.Errorf("%w: session %s", ErrSessionNotStarted, s.id)
	case models.StateEnded:
		return TurnResult{}, fmt.Errorf("%w: session %s", ErrSessionEnded, s.id)
	case models.StateExpired:
		return s.expiredResult(), nil
	}

	if remainingSeconds(s.now(), s.startedAt, s.cfg.Duration) <= 0 {
		s.state = models.StateExpired
		return s.expiredResult(), nil
	}

	facts := s.searchFacts(ctx, message)
	userTurn := models.Turn{Role: models.RoleUser, Text: message, Timestamp: s.now()}
	window := recentWindow(append(copyTurns(s.transcript), userTurn), s.cfg.HistoryWindow)

	botText, err := s.responder.Generate(ctx, RenderReply(window, message, facts))
	if err != nil {
		return TurnResult{}, fmt.Errorf("generating reply: %w", err)
	}

	s.transcript = append(s.transcript, userTurn, models.Turn{
		Role:       models.RoleBot,
		Text:       botText,
		CitedFacts: facts,
		Timestamp:  s.now(),
	})

	userPoints, botPoints, reasoning := JudgeRound(ctx, s.responder, message, botText)
	s.userScore += userPoints
	s.botScore += botPoints

	return TurnResult{
		BotText:        botText,
		UserScore:      s.userScore,
		BotScore:       s.botScore,
		Remaining:      remainingSeconds(s.now(), s.startedAt, s.cfg.Duration),
		Facts:          facts,
		JudgeReasoning: reasoning,
	}, nil
}

// End closes the session and generates the persona report. It is valid from
// active or expired, and idempotent once ended: repeated calls return the
// cached result without calling the responder again. A report-generation
// failure surfaces and leaves the session endable for a retry.
func (s *GameSession) End(ctx context.Context) (EndResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case models.StateIdle:
		return EndResult{}, fmt.Errorf("%w: session %s", ErrSessionNotStarted, s.id)
	case models.StateEnded:
		return *s.finalResult, nil
	}

	report, err := s.responder.Generate(ctx, RenderPersonaReport(s.transcript))
	if err != nil {
		return EndResult{}, fmt.Errorf("generating persona report: %w", err)
	}

	s.state = models.StateEnded
	s.finalResult = &EndResult{
		Report:       report,
		Verdict:      verdictLine(s.userScore, s.botScore),
		UserScore:    s.userScore,
		BotScore:     s.botScore,
		TotalSeconds: int(s.now().Sub(s.startedAt) / time.Second),
	}
	return *s.finalResult, nil
}

// Status reports the session without advancing its lifecycle.
func (s *GameSession) Status() StatusResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := 0
	if s.state == models.StateActive {
		remaining = remainingSeconds(s.now(), s.startedAt, s.cfg.Duration)
	}
	return StatusResult{
		State:     s.state,
		UserScore: s.userScore,
		BotScore:  s.botScore,
		Remaining: remaining,
	}
}

// searchFacts absorbs fact-finder failures; the game never fails just because
// search did.
func (s *GameSession) searchFacts(ctx context.Context, query string) []models.Fact {
	facts, err := s.finder.Search(ctx, query)
	if err != nil {
		log.Printf("Fact search failed for session %s: %v", s.id, err)
		return nil
	}
	return facts
}

func (s *GameSession) expiredResult() TurnResult {
	return TurnResult{
		BotText:   expiredReply,
		UserScore: s.userScore,
		BotScore:  s.botScore,
		Remaining: 0,
		GameEnded: true,
	}
}

func copyTurns(turns []models.Turn) []models.Turn {
	out := make([]models.Turn, len(turns))
	copy(out, turns)
	return out
}

// verdictLine picks the closing winner announcement from the final scores.
func verdictLine(userScore, botScore int) string {
	switch {
	case userScore > botScore:
		return "🎉 CONGRATULATIONS! You WON the argument!"
	case botScore > userScore:
		return "😏 The bot DESTROYED you in this argument!"
	default:
		return "🤝 It's a TIE! You're both equally stubborn!"
	}
}

// StatusLine renders the scoreboard message shown after each exchange.
func StatusLine(userScore, botScore, remaining int) string {
	if remaining <= 0 {
		return "⏰ Time's up! Final scores are locked in!"
	}
	switch {
	case userScore > botScore:
		return fmt.Sprintf("🔥 You're leading %d-%d! Keep the momentum going!", userScore, botScore)
	case botScore > userScore:
		return fmt.Sprintf("😈 The bot is ahead %d-%d! Time to step up your game!", botScore, userScore)
	default:
		return fmt.Sprintf("⚖️ It's a tie at %d-%d! This is getting intense!", userScore, botScore)
	}
}
