package services

import (
	"fmt"
	"strings"
	"testing"
)

func draftFixture(n int) []QuestionDraft {
	drafts := make([]QuestionDraft, 0, n)
	for i := 0; i < n; i++ {
		drafts = append(drafts, QuestionDraft{
			Text:    fmt.Sprintf("generated question %d", i+1),
			Options: []string{"a", "b", "c", "d"},
			Correct: i % 4,
		})
	}
	return drafts
}

func TestReconcileDraftsAlwaysReturnsRequestedCount(t *testing.T) {
	cases := []struct {
		name      string
		drafts    []QuestionDraft
		requested int
	}{
		{name: "empty_input", drafts: nil, requested: 5},
		{name: "exact_input", drafts: draftFixture(5), requested: 5},
		{name: "excess_input", drafts: draftFixture(12), requested: 5},
		{name: "partial_input", drafts: draftFixture(2), requested: 7},
		{name: "single_question", drafts: nil, requested: 1},
		{name: "large_request", drafts: draftFixture(3), requested: 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reconcileDrafts(tc.drafts, tc.requested, "Genel Kültür")
			if len(got) != tc.requested {
				t.Fatalf("reconcileDrafts returned %d drafts, want %d", len(got), tc.requested)
			}
			for i, draft := range got {
				if draft.Text == "" {
					t.Errorf("draft %d has empty text", i)
				}
				if len(draft.Options) == 0 {
					t.Errorf("draft %d has no options", i)
				}
				if draft.Correct < 0 || draft.Correct >= len(draft.Options) {
					t.Errorf("draft %d correct index %d out of range", i, draft.Correct)
				}
			}
		})
	}
}

func TestReconcileDraftsTruncatesInOrder(t *testing.T) {
	got := reconcileDrafts(draftFixture(5), 3, "whatever")
	if len(got) != 3 {
		t.Fatalf("got %d drafts, want 3", len(got))
	}
	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("generated question %d", i+1)
		if got[i].Text != want {
			t.Errorf("draft %d = %q, want %q", i, got[i].Text, want)
		}
	}
}

func TestReconcileDraftsShortfallKeepsGeneratedFirst(t *testing.T) {
	got := reconcileDrafts(draftFixture(2), 5, "Genel Kültür")
	if len(got) != 5 {
		t.Fatalf("got %d drafts, want 5", len(got))
	}
	for i := 0; i < 2; i++ {
		if !strings.HasPrefix(got[i].Text, "generated question") {
			t.Errorf("draft %d = %q, want generated draft first", i, got[i].Text)
		}
	}
	for i := 2; i < 5; i++ {
		if !strings.Contains(got[i].Text, "konusu ile ilgili") {
			t.Errorf("draft %d = %q, want template filler", i, got[i].Text)
		}
	}
	// Filler numbering restarts at 1 for the shortfall batch.
	if !strings.Contains(got[2].Text, "1. soru") {
		t.Errorf("first filler = %q, want it numbered 1", got[2].Text)
	}
}

func TestReconcileDraftsNonPositiveCount(t *testing.T) {
	if got := reconcileDrafts(draftFixture(3), 0, "x"); len(got) != 0 {
		t.Fatalf("requested 0, got %d drafts", len(got))
	}
}
