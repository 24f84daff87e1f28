package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

// GenerationClient is the outbound question-generation capability. A client
// that reports Available() == false must never be asked to Generate; the
// quiz service falls back to sample questions instead.
type GenerationClient interface {
	Available() bool
	Generate(ctx context.Context, topic, description string, count int, difficulty, category string) (string, error)
}

type GenerationErrorKind string

const (
	GenerationErrorQuota   GenerationErrorKind = "quota_exceeded"
	GenerationErrorAuth    GenerationErrorKind = "auth_error"
	GenerationErrorGeneric GenerationErrorKind = "generic"
)

// ClassifyGenerationError buckets a provider failure by inspecting its text.
// Provider error payloads carry no stable machine-readable code, so this
// stays a substring match; keep it isolated so provider wording changes are
// caught by its tests.
func ClassifyGenerationError(raw string) GenerationErrorKind {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "quota") || strings.Contains(lowered, "limit"):
		return GenerationErrorQuota
	case strings.Contains(lowered, "key") || strings.Contains(lowered, "auth"):
		return GenerationErrorAuth
	default:
		return GenerationErrorGeneric
	}
}

type geminiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGenerationClientFromEnv returns a Gemini-backed client when
// GEMINI_API_KEY is set and a disabled client otherwise.
func NewGenerationClientFromEnv(log *logger.Logger) GenerationClient {
	apiKey := strings.TrimSpace(utils.GetEnv("GEMINI_API_KEY", "", nil))
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, quiz generation will use sample questions")
		return &nullGenerationClient{}
	}

	baseURL := utils.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com", nil)
	model := utils.GetEnv("GEMINI_MODEL", "gemini-1.5-flash", nil)

	timeoutSec := 60
	if v := utils.GetEnv("GEMINI_TIMEOUT_SECONDS", "", nil); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &geminiClient{
		log:        log.With("service", "GeminiClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (c *geminiClient) Available() bool {
	return true
}

type geminiGenerateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate performs exactly one generateContent round trip. No retries: a
// failed call degrades to sample questions at the caller, so retrying here
// would only hold the request open.
func (c *geminiClient) Generate(ctx context.Context, topic, description string, count int, difficulty, category string) (string, error) {
	prompt := buildQuizPrompt(topic, description, count, difficulty, category)

	var reqBody geminiGenerateRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	reqBody.GenerationConfig.Temperature = 0.7

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	var parsed geminiGenerateResponse
	if uErr := json.Unmarshal(raw, &parsed); uErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(raw))
		}
		return "", fmt.Errorf("gemini decode error: %w", uErr)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini http %d (%s): %s", parsed.Error.Code, parsed.Error.Status, parsed.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(raw))
	}

	var text string
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
		break
	}
	if text == "" {
		return "", fmt.Errorf("gemini returned no candidate text")
	}
	return text, nil
}

// nullGenerationClient stands in when no provider credential is configured.
type nullGenerationClient struct{}

func (c *nullGenerationClient) Available() bool {
	return false
}

func (c *nullGenerationClient) Generate(ctx context.Context, topic, description string, count int, difficulty, category string) (string, error) {
	return "", fmt.Errorf("generation client not configured")
}
