package services

import (
	"context"
	"encoding/json"
	"strings"

	"argubot/models"
)

// judgeFallbackReasoning is returned whenever the judge's output can't be
// parsed or the judge call itself fails. No points are awarded in that case.
const judgeFallbackReasoning = "Judge had technical difficulties, no points awarded this round."

// JudgeRound asks the responder to adjudicate one exchange and parses its
// verdict. It returns the points for the user and the bot (exactly one of
// them 1 on a win, both 0 on a tie) plus the judge's reasoning. All failures
// degrade to a zero-point tie; this never aborts a round.
func JudgeRound(ctx context.Context, responder Responder, userText, botText string) (int, int, string) {
	text, err := responder.Generate(ctx, RenderJudge(userText, botText))
	if err != nil {
		return 0, 0, judgeFallbackReasoning
	}

	verdict, ok := parseVerdict(text)
	if !ok {
		return 0, 0, judgeFallbackReasoning
	}

	switch verdict.Winner {
	case models.RoleUser:
		return 1, 0, verdict.Reasoning
	case models.RoleBot:
		return 0, 1, verdict.Reasoning
	default: // tie
		return 0, 0, verdict.Reasoning
	}
}

// parseVerdict extracts the JSON object from the judge's free-form output by
// locating the first '{' and last '}'. Model output is loosely formatted, so
// strict whole-string decoding would reject valid verdicts wrapped in prose.
func parseVerdict(text string) (models.JudgeVerdict, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return models.JudgeVerdict{}, false
	}

	var verdict models.JudgeVerdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &verdict); err != nil {
		return models.JudgeVerdict{}, false
	}

	verdict.Winner = strings.ToLower(strings.TrimSpace(verdict.Winner))
	switch verdict.Winner {
	case models.RoleUser, models.RoleBot, "tie":
		return verdict, true
	default:
		return models.JudgeVerdict{}, false
	}
}
