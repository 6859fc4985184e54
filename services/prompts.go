package services

import (
	"fmt"
	"strings"

	"argubot/models"
)

// maxPromptFacts bounds how many fact snippets are rendered into a single
// reply prompt regardless of how many the finder returned.
const maxPromptFacts = 3

// factsContext renders up to maxPromptFacts facts as bullet lines placed
// before the instruction block. Empty input renders nothing.
func factsContext(facts []models.Fact) string {
	if len(facts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nFactual Information Available:\n")
	for i, fact := range facts {
		if i >= maxPromptFacts {
			break
		}
		sb.WriteString(fmt.Sprintf("• %s [SOURCE: %s]\n", fact.Snippet, fact.Link))
	}
	return sb.String()
}

// RenderReply builds the rebuttal prompt from the recent conversation, the
// user's latest message, and any facts found for it. The register choice
// (casual Gen Z vs formal Victorian) is delegated to the model; the prompt
// only carries the instruction.
func RenderReply(history []models.Turn, userText string, facts []models.Fact) string {
	requirements := `1. DISAGREES with their argument using solid reasoning and evidence
2. Mixes logical arguments WITH sassy comebacks throughout - don't separate them
3. Uses your chosen speaking style consistently
4. Stays entertaining while being substantive`
	citeInstruction := ""
	if len(facts) > 0 {
		requirements = `1. DISAGREES with their argument using solid reasoning and evidence
2. Weaves in factual information from the sources above (include [SOURCE: URL] citations)
3. Mixes logical arguments WITH sassy comebacks throughout - don't separate them
4. Uses your chosen speaking style consistently
5. Stays entertaining while being substantive`
		citeInstruction = "IMPORTANT: When you use factual information, include the [SOURCE: URL] citation immediately after the fact.\n"
	}

	return fmt.Sprintf(`You are a smart argument bot. Here's the conversation so far:

%s
The human just said: "%s"
%s
Choose your speaking style based on the topic:
- Gen Z style: For modern/casual topics (use slang like "bestie", "no cap", "that's cap", "periodt", "slay", "fr fr", "it's giving...", etc.)
- Victorian style: For formal/serious topics (use elaborate language like "I dare say", "most preposterous", "good sir/madam", "one simply cannot", etc.)

Do NOT include any style labels like "Gen Z style:" or "Victorian style:" in your response. Just write the argument directly.

Write a BRIEF natural response (3-4 lines max) that:
%s

Be CONCISE and PUNCHY! Don't ramble - hit them with facts and sass in just a few lines. Make every word count!

%sIMPORTANT: Do NOT use any asterisk formatting like *adjusts glasses* or markdown like **bold text**. Write naturally like a real person arguing.`,
		FormatHistory(history), userText, factsContext(facts), requirements, citeInstruction)
}

// RenderJudge builds the adjudication prompt for one exchange. The response
// contract is a single JSON object with winner and reasoning fields.
func RenderJudge(userText, botText string) string {
	return fmt.Sprintf(`You are a VERY CRITICAL and impartial debate judge. Be STRICT - only award points for genuinely strong arguments.

Human said: "%s"
Bot replied: "%s"

Judge who made the stronger argument based on:
1. Logical reasoning and evidence
2. Clarity and persuasiveness
3. Addressing the opponent's points
4. Originality and creativity

DO NOT award points for:
- Basic statements without reasoning
- Simple opinions without support
- Just being witty or sassy
- Restating obvious facts

Be harsh but fair. Many rounds should be ties if neither side made a compelling argument.

Respond with ONLY a JSON object like this:
{
    "winner": "user" or "bot" or "tie",
    "reasoning": "Brief explanation of your decision"
}`, userText, botText)
}

// RenderPersonaReport builds the closing roast prompt from the user's side of
// the transcript. The eight-section structure is fixed.
func RenderPersonaReport(transcript []models.Turn) string {
	return fmt.Sprintf(`Based on this human's arguing style and the things they said during our argument, create a SNARKY character profile that roasts them playfully. Here's what they argued about:

%s
Format the response EXACTLY like this structure:

🎭 PERSONALITY ROAST REPORT 🎭

👤 Arguing Persona: "[Creative title like 'The Trust Me Bro Tech Bro' or 'Captain One-Liner']"

🔍 ARGUING STYLE BREAKDOWN:
[3-4 bullet points with percentages about their style, like "• 60%% Stubborn repetition • 30%% Brand loyalty without evidence"]

💪 STRONGEST TRAITS:
[2-3 bullet points about what they did well in the argument]

🤪 WEAKEST TRAITS:
[2-3 bullet points about their arguing weaknesses, but playfully snarky]

🎯 PERSONALITY SUMMARY:
[A witty paragraph summary of their overall arguing personality]

⭐ FUNNY SCORES (0-100):
[6-8 creative scoring categories with funny names and scores, like "Word Efficiency: 95/100" or "Evidence Usage: 12/100"]

🏆 FINAL VERDICT:
[One sentence final roast or achievement, like "Achievement Unlocked: Master of the Two-Word Comeback"]

Make it entertaining, witty, and playfully snarky but not mean!`, userTurnsOnly(transcript))
}
