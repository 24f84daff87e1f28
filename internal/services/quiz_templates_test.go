package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestSampleQuestionsTopicRouting(t *testing.T) {
	cases := []struct {
		name      string
		topic     string
		wantFirst string
	}{
		{
			name:      "math_topic_selects_math_pool",
			topic:     "Matematik Sınavı",
			wantFirst: "2x + 5 = 15 denkleminde x'in değeri nedir?",
		},
		{
			name:      "science_topic_selects_science_pool",
			topic:     "Fizik Testi",
			wantFirst: "Su molekülünün kimyasal formülü nedir?",
		},
		{
			name:      "history_topic_selects_history_pool",
			topic:     "Osmanlı Tarihi",
			wantFirst: "Osmanlı İmparatorluğu hangi yılda kurulmuştur?",
		},
		{
			name:      "math_wins_over_history_when_both_match",
			topic:     "matematik tarihi",
			wantFirst: "2x + 5 = 15 denkleminde x'in değeri nedir?",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sampleQuestions(4, tc.topic)
			if len(got) != 4 {
				t.Fatalf("sampleQuestions returned %d drafts, want 4", len(got))
			}
			if got[0].Text != tc.wantFirst {
				t.Fatalf("first question = %q, want %q", got[0].Text, tc.wantFirst)
			}
		})
	}
}

func TestSampleQuestionsNoKeywordMatchYieldsGenericFiller(t *testing.T) {
	got := sampleQuestions(3, "Genel Kültür")
	if len(got) != 3 {
		t.Fatalf("sampleQuestions returned %d drafts, want 3", len(got))
	}
	for i, draft := range got {
		if !strings.Contains(draft.Text, "Genel Kültür konusu ile ilgili") {
			t.Errorf("draft %d text = %q, want generic filler", i, draft.Text)
		}
		if !strings.Contains(draft.Text, "düzenleyerek kendi sorunuzu") {
			t.Errorf("draft %d text = %q, want editable hint", i, draft.Text)
		}
		if !reflect.DeepEqual(draft.Options, genericOptions) {
			t.Errorf("draft %d options = %v, want generic options", i, draft.Options)
		}
		if draft.Correct != 0 {
			t.Errorf("draft %d correct = %d, want 0", i, draft.Correct)
		}
	}
	// Filler numbering is 1-based from the draft position.
	if !strings.Contains(got[2].Text, "3. soru") {
		t.Errorf("third filler text = %q, want it numbered 3", got[2].Text)
	}
}

func TestSampleQuestionsMathSpecialCaseOptions(t *testing.T) {
	got := sampleQuestions(4, "Matematik")
	if !reflect.DeepEqual(got[0].Options, []string{"5", "3", "10", "7"}) {
		t.Errorf("equation question options = %v, want numeric options", got[0].Options)
	}
	if !reflect.DeepEqual(got[1].Options, []string{"180°", "90°", "360°", "270°"}) {
		t.Errorf("triangle question options = %v, want degree options", got[1].Options)
	}
	for i, draft := range got {
		if draft.Correct < 0 || draft.Correct >= len(draft.Options) {
			t.Errorf("draft %d correct index %d out of range", i, draft.Correct)
		}
	}
}

func TestSampleQuestionsOverflowUsesFillerPastPool(t *testing.T) {
	got := sampleQuestions(6, "Tarih")
	if len(got) != 6 {
		t.Fatalf("sampleQuestions returned %d drafts, want 6", len(got))
	}
	if strings.Contains(got[3].Text, "konusu ile ilgili") {
		t.Errorf("draft 3 should still come from the history pool, got %q", got[3].Text)
	}
	for i := 4; i < 6; i++ {
		if !strings.Contains(got[i].Text, "Tarih konusu ile ilgili") {
			t.Errorf("draft %d = %q, want generic filler past pool size", i, got[i].Text)
		}
	}
}

func TestSampleQuestionsIsDeterministic(t *testing.T) {
	first := sampleQuestions(10, "matematik")
	second := sampleQuestions(10, "matematik")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("sampleQuestions is not deterministic for identical input")
	}
}
