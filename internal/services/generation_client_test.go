package services

import (
	"context"
	"testing"
)

func TestClassifyGenerationError(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want GenerationErrorKind
	}{
		{name: "quota_word", raw: "429: Quota exceeded for project", want: GenerationErrorQuota},
		{name: "rate_limit", raw: "resource limit reached, try again later", want: GenerationErrorQuota},
		{name: "api_key", raw: "API key not valid. Please pass a valid API key.", want: GenerationErrorAuth},
		{name: "auth_word", raw: "401 authentication required", want: GenerationErrorAuth},
		{name: "plain_failure", raw: "connection reset by peer", want: GenerationErrorGeneric},
		{name: "empty", raw: "", want: GenerationErrorGeneric},
		{name: "case_insensitive", raw: "QUOTA EXHAUSTED", want: GenerationErrorQuota},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyGenerationError(tc.raw); got != tc.want {
				t.Fatalf("ClassifyGenerationError(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNullGenerationClient(t *testing.T) {
	client := &nullGenerationClient{}
	if client.Available() {
		t.Fatal("null client reports itself available")
	}
	if _, err := client.Generate(context.Background(), "t", "d", 3, "medium", ""); err == nil {
		t.Fatal("null client Generate should fail")
	}
}
