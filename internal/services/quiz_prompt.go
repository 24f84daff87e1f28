package services

import (
	"fmt"
	"strings"
)

var difficultyInstructions = map[string]string{
	"easy":   "kolay seviyede, temel bilgi gerektiren",
	"medium": "orta seviyede, analiz gerektiren",
	"hard":   "zor seviyede, derin düşünme gerektiren",
}

// buildQuizPrompt combines the role framing, the JSON output contract and
// the concrete request into a single message. Gemini takes no separate
// system role here, so both halves travel together.
func buildQuizPrompt(topic, description string, count int, difficulty, category string) string {
	instruction, ok := difficultyInstructions[difficulty]
	if !ok {
		instruction = difficultyInstructions["medium"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Sen uzman bir quiz oluşturucususun. Verilen konuda %s çoktan seçmeli sorular hazırlarsın.

KURALLAR:
- Her soru için 4 seçenek (A, B, C, D) oluştur
- Sadece bir doğru cevap olsun
- Yanıltıcı ama mantıklı seçenekler ekle
- Soruları açık ve anlaşılır yaz
- Türkçe dilbilgisi kurallarına uy

ÇIKTI FORMATI (SADECE JSON):
{
  "questions": [
    {
      "text": "Soru metni burada",
      "options": ["Seçenek A", "Seçenek B", "Seçenek C", "Seçenek D"],
      "correct": 0
    }
  ]
}`, instruction)

	fmt.Fprintf(&b, "\n\nGÖREV: %d adet çoktan seçmeli soru oluştur\n\nKONU: %s\nAÇIKLAMA: %s\nZORLUK: %s\n", count, topic, description, difficulty)
	if category != "" {
		fmt.Fprintf(&b, "KATEGORİ: %s\n", category)
	}
	fmt.Fprintf(&b, "\nLütfen yukarıdaki JSON formatında tam olarak %d adet soru oluştur.", count)

	return b.String()
}
