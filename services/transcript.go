package services

import (
	"fmt"
	"strings"

	"argubot/models"
)

// recentWindow returns the last n turns in chronological order, oldest first.
// The underlying transcript is never modified.
func recentWindow(turns []models.Turn, n int) []models.Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// FormatHistory converts transcript turns into the conversation context block
// used inside prompts.
func FormatHistory(turns []models.Turn) string {
	var sb strings.Builder
	for _, turn := range turns {
		role := "Bot"
		if turn.Role == models.RoleUser {
			role = "Human"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n\n", role, turn.Text))
	}
	return sb.String()
}

// userTurnsOnly extracts the human side of the transcript for the persona
// report, which must be derived from the user's arguments alone.
func userTurnsOnly(turns []models.Turn) string {
	var sb strings.Builder
	for _, turn := range turns {
		if turn.Role == models.RoleUser {
			sb.WriteString(fmt.Sprintf("Human: %s\n", turn.Text))
		}
	}
	return sb.String()
}
