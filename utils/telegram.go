package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadhub/config"
)

var telegramClient = &http.Client{Timeout: 10 * time.Second}

// SendTelegramMessage posts a text notification to the configured chat
// via the Telegram Bot API. Returns nil when notifications are disabled.
func SendTelegramMessage(text string) error {
	cfg := config.AppConfig.Telegram
	if !cfg.Enabled {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": cfg.ChatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", cfg.BotToken)
	resp, err := telegramClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}
