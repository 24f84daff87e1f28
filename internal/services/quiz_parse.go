package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionDraft is an in-memory question candidate, produced by generation
// or by the sample templates and not yet persisted.
type QuestionDraft struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

type generatedQuizPayload struct {
	Questions []QuestionDraft `json:"questions"`
}

// parseGeneratedQuestions extracts question drafts from raw model output.
// Models sometimes wrap the JSON in a fenced code block; the fence is
// stripped before parsing. Missing "questions" yields an empty list rather
// than an error, since the reconciler covers any shortfall.
func parseGeneratedQuestions(raw string) ([]QuestionDraft, error) {
	content := stripCodeFence(raw)

	var payload generatedQuizPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse generated quiz JSON: %w", err)
	}
	return sanitizeDrafts(payload.Questions), nil
}

func stripCodeFence(raw string) string {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// sanitizeDrafts drops drafts that cannot be rendered at all (no text or no
// options) and clamps an out-of-range correct index to the first option.
// Dropped entries are backfilled later by the reconciler.
func sanitizeDrafts(drafts []QuestionDraft) []QuestionDraft {
	out := make([]QuestionDraft, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Text) == "" {
			continue
		}
		if len(draft.Options) == 0 {
			continue
		}
		if draft.Correct < 0 || draft.Correct >= len(draft.Options) {
			draft.Correct = 0
		}
		out = append(out, draft)
	}
	return out
}
