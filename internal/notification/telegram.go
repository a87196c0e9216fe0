package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// TelegramConfig holds the configuration for the Telegram Bot API
type TelegramConfig struct {
	APIToken string
	BaseURL  string
}

// TelegramClient sends messages through the Telegram Bot API. With no API
// token configured it runs in simulation mode: messages are logged and
// reported as sent, which keeps local development working without a bot.
type TelegramClient struct {
	config     TelegramConfig
	httpClient *http.Client
}

// NewTelegramClient creates a new telegram client
func NewTelegramClient(config TelegramConfig) *TelegramClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.telegram.org/bot"
	}

	return &TelegramClient{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage delivers a text message to a Telegram chat. Any failure is
// returned as an error; callers treat it as "not sent" and continue.
func (c *TelegramClient) SendMessage(chatID int64, text string) error {
	if c.config.APIToken == "" {
		log.Printf("SIMULATION: sending to %d: %s", chatID, text)
		return nil
	}

	url := fmt.Sprintf("%s%s/sendMessage", c.config.BaseURL, c.config.APIToken)

	requestBody := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
