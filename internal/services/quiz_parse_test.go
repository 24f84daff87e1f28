package services

import (
	"testing"
)

func TestParseGeneratedQuestions(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "plain_json",
			raw:  `{"questions":[{"text":"q1","options":["a","b","c","d"],"correct":1}]}`,
			want: 1,
		},
		{
			name: "json_code_fence",
			raw: "```json\n" +
				`{"questions":[{"text":"q1","options":["a","b","c","d"],"correct":0},{"text":"q2","options":["a","b","c","d"],"correct":3}]}` +
				"\n```",
			want: 2,
		},
		{
			name: "bare_code_fence",
			raw:  "```\n{\"questions\":[{\"text\":\"q1\",\"options\":[\"a\",\"b\"],\"correct\":0}]}\n```",
			want: 1,
		},
		{
			name: "surrounding_whitespace",
			raw:  "\n\n  {\"questions\":[{\"text\":\"q1\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct\":2}]}  \n",
			want: 1,
		},
		{
			name:    "unparseable",
			raw:     "I could not produce JSON, sorry.",
			wantErr: true,
		},
		{
			name:    "truncated_json",
			raw:     `{"questions":[{"text":"q1","options":["a","b"`,
			wantErr: true,
		},
		{
			name: "missing_questions_key",
			raw:  `{"items":[]}`,
			want: 0,
		},
		{
			name: "empty_object",
			raw:  `{}`,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseGeneratedQuestions(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseGeneratedQuestions(%q) expected error, got %d drafts", tc.raw, len(got))
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGeneratedQuestions(%q) unexpected error: %v", tc.raw, err)
			}
			if len(got) != tc.want {
				t.Fatalf("parseGeneratedQuestions returned %d drafts, want %d", len(got), tc.want)
			}
		})
	}
}

func TestSanitizeDrafts(t *testing.T) {
	drafts := []QuestionDraft{
		{Text: "kept", Options: []string{"a", "b", "c", "d"}, Correct: 2},
		{Text: "", Options: []string{"a", "b"}, Correct: 0},
		{Text: "   ", Options: []string{"a", "b"}, Correct: 0},
		{Text: "no options", Options: nil, Correct: 0},
		{Text: "clamped high", Options: []string{"a", "b", "c", "d"}, Correct: 9},
		{Text: "clamped negative", Options: []string{"a", "b"}, Correct: -1},
	}

	got := sanitizeDrafts(drafts)
	if len(got) != 3 {
		t.Fatalf("sanitizeDrafts kept %d drafts, want 3", len(got))
	}
	if got[0].Correct != 2 {
		t.Errorf("in-range correct index changed: got %d, want 2", got[0].Correct)
	}
	if got[1].Correct != 0 {
		t.Errorf("out-of-range correct index not clamped: got %d", got[1].Correct)
	}
	if got[2].Correct != 0 {
		t.Errorf("negative correct index not clamped: got %d", got[2].Correct)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no_fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json_fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain_fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "unterminated_fence", in: "```json\n{\"a\":1}", want: `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Fatalf("stripCodeFence(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
