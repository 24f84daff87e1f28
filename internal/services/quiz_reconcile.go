package services

// reconcileDrafts forces the draft list to exactly requestedCount entries.
// Extras are truncated in order; a shortfall is topped up with sample
// questions for the topic, generated drafts first. This is the single place
// the exact-count contract is enforced.
func reconcileDrafts(drafts []QuestionDraft, requestedCount int, topic string) []QuestionDraft {
	if requestedCount <= 0 {
		return []QuestionDraft{}
	}
	if len(drafts) >= requestedCount {
		return drafts[:requestedCount]
	}
	shortfall := requestedCount - len(drafts)
	result := make([]QuestionDraft, 0, requestedCount)
	result = append(result, drafts...)
	result = append(result, sampleQuestions(shortfall, topic)...)
	return result
}
