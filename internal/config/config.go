package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Config holds the configuration for the application.
type Config struct {
	// DataDir is the root for all locally persisted state.
	DataDir      string
	DatabasePath string

	// GeminiAPIKey may be empty. The coach service reports a missing
	// credential at request time so the rest of the app keeps working.
	GeminiAPIKey string
	GeminiModel  string

	// AccessNameOnly makes the identity capture ask for a name only,
	// instead of name and email.
	AccessNameOnly bool

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("COACH_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	databasePath := os.Getenv("COACH_DATABASE_PATH")
	if databasePath == "" {
		databasePath = filepath.Join(dataDir, "coach.db")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	allowedIDs, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}

	var adminID int64
	if raw := os.Getenv("TELEGRAM_ADMIN_ID"); raw != "" {
		adminID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID: %w", err)
		}
	}

	return &Config{
		DataDir:                dataDir,
		DatabasePath:           databasePath,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            geminiModel,
		AccessNameOnly:         os.Getenv("ACCESS_NAME_ONLY") == "true",
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}

// RequireTelegram validates the settings the bot binary cannot run without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

func parseUserIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a user ID", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
