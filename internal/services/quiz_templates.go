package services

import (
	"fmt"
	"strings"
)

// Topic-keyed fallback questions used when AI generation is unavailable or
// comes up short. Selection and filling are deterministic: the same
// (count, topic) always yields the same drafts.

var mathKeywords = []string{"matematik", "mat", "hesap", "sayı"}
var scienceKeywords = []string{"fen", "fizik", "kimya", "biyoloji"}
var historyKeywords = []string{"tarih", "cumhuriyet", "osmanlı"}

var mathTemplates = []string{
	"2x + 5 = 15 denkleminde x'in değeri nedir?",
	"Bir üçgenin iç açılarının toplamı kaç derecedir?",
	"√16 ifadesinin değeri nedir?",
	"y = 2x + 3 doğrusunun eğimi nedir?",
}

var scienceTemplates = []string{
	"Su molekülünün kimyasal formülü nedir?",
	"Işık hızı yaklaşık olarak saniyede kaç kilometre?",
	"Atomun çekirdeğinde hangi parçacıklar bulunur?",
	"Newton'un kaç hareket yasası vardır?",
}

var historyTemplates = []string{
	"Osmanlı İmparatorluğu hangi yılda kurulmuştur?",
	"Cumhuriyet hangi tarihte ilan edilmiştir?",
	"İstanbul'un fetih tarihi nedir?",
	"Atatürk hangi şehirde doğmuştur?",
}

var genericOptions = []string{"Seçenek A", "Seçenek B", "Seçenek C", "Seçenek D"}

func topicContainsAny(topicLower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(topicLower, keyword) {
			return true
		}
	}
	return false
}

// sampleQuestions returns exactly count drafts for the topic. A matching
// topic pool fills the first entries; everything past the pool (or the whole
// list when no pool matches) is a generic editable placeholder question.
func sampleQuestions(count int, topic string) []QuestionDraft {
	topicLower := strings.ToLower(topic)

	var templates []string
	switch {
	case topicContainsAny(topicLower, mathKeywords):
		templates = mathTemplates
	case topicContainsAny(topicLower, scienceKeywords):
		templates = scienceTemplates
	case topicContainsAny(topicLower, historyKeywords):
		templates = historyTemplates
	}

	questions := make([]QuestionDraft, 0, count)
	for i := 0; i < count; i++ {
		if i < len(templates) {
			text := templates[i]
			options := genericOptions
			if strings.Contains(topicLower, "matematik") {
				if strings.Contains(text, "2x + 5") {
					options = []string{"5", "3", "10", "7"}
				} else {
					options = []string{"180°", "90°", "360°", "270°"}
				}
			}
			questions = append(questions, QuestionDraft{
				Text:    text,
				Options: options,
				Correct: 0,
			})
			continue
		}
		questions = append(questions, QuestionDraft{
			Text:    fmt.Sprintf("%s konusu ile ilgili %d. soru. Bu soruyu düzenleyerek kendi sorunuzu yazabilirsiniz.", topic, i+1),
			Options: genericOptions,
			Correct: 0,
		})
	}
	return questions
}
