package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avoronov/ai-digest/internal/aggregator"
)

// GeminiSummarizer uses the Gemini generateContent API to write the digest.
// Errors are never swallowed here: a digest without real content is worse
// than no digest, so any failure aborts the run.
type GeminiSummarizer struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func NewGeminiSummarizer(apiKey, model string, client *http.Client) *GeminiSummarizer {
	return &GeminiSummarizer{
		apiKey:  apiKey,
		model:   model,
		client:  client,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

// Gemini API request/response types

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, results []aggregator.Result) (string, error) {
	prompt := buildPrompt(results)

	text, err := s.callAPI(ctx, prompt)
	if err != nil {
		return "", err
	}

	return stripFences(text), nil
}

// promptLabel maps each bucket to the label the instruction template uses.
func promptLabel(b aggregator.Bucket) string {
	switch b {
	case aggregator.BucketNews:
		return "NEWS"
	case aggregator.BucketTools:
		return "TOOLS"
	case aggregator.BucketMemes:
		return "REDDIT/MEMES"
	case aggregator.BucketPapers:
		return "PAPERS (arXiv)"
	case aggregator.BucketHackerNews:
		return "HACKERNEWS"
	case aggregator.BucketGitHub:
		return "GITHUB"
	case aggregator.BucketPapersWithCode:
		return "PWC"
	default:
		return strings.ToUpper(string(b))
	}
}

// buildPrompt renders every bucket into the fixed instruction template.
// Empty buckets keep their placeholder so the model always sees the full
// category layout.
func buildPrompt(results []aggregator.Result) string {
	var sb strings.Builder
	sb.WriteString("You are an AI Twitter/Telegram content creator.\n")
	sb.WriteString("Here is today's fresh AI content with sources:\n\n")

	for _, res := range results {
		sb.WriteString(promptLabel(res.Bucket))
		sb.WriteString(":\n")
		if len(res.Items) == 0 {
			sb.WriteString("(none)\n")
		}
		for _, item := range res.Items {
			sb.WriteString(fmt.Sprintf("- %s — %s\n", item.Title, item.Link))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Create a concise engaging Telegram update with:
- 2-3 🔥 AI news items (tweet-style, with source link)
- 2-3 🚀 trending AI tools/products (with source link)
- 2-3 🤖 memes/funny AI bits (short, with link)
- 2-3 📑 research paper highlights (with link)
- 1-2 📌 Hacker News or GitHub insights (with link)
Use emojis, keep it natural and engaging, and include links inline.
Keep the whole update only slightly longer than a tweet.`)

	return sb.String()
}

func (s *GeminiSummarizer) callAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("gemini: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to read response: %w", err)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("gemini: API error: %s - %s", apiResp.Error.Status, apiResp.Error.Message)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes markdown fences some models wrap their output in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```markdown")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
