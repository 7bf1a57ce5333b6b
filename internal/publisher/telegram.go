package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramSendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// TelegramPublisher sends the digest to one chat via the bot sendMessage
// endpoint. Delivery is best-effort: a single attempt, no retry, but the
// response is inspected so a failed send is reported instead of discarded.
type TelegramPublisher struct {
	token   string
	chatID  string
	client  *http.Client
	baseURL string
}

func NewTelegramPublisher(token, chatID string, client *http.Client) *TelegramPublisher {
	return &TelegramPublisher{
		token:   token,
		chatID:  chatID,
		client:  client,
		baseURL: "https://api.telegram.org",
	}
}

func (p *TelegramPublisher) Publish(ctx context.Context, text string) error {
	payload := telegramSendRequest{
		ChatID:    p.chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", p.baseURL, p.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: failed to read response: %w", err)
	}

	var apiResp telegramSendResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("telegram: unexpected status %d", resp.StatusCode)
	}

	if !apiResp.OK {
		return fmt.Errorf("telegram: send failed with status %d: %s", resp.StatusCode, apiResp.Description)
	}

	return nil
}
