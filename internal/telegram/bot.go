package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"ai-fitness-coach/internal/app"
	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/metrics"
	"ai-fitness-coach/internal/videolink"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const profileHelp = `Send your profile as "field: value" lines:

age: 20
gender: male
height: 175
weight: 70
goal: muscle gain
level: beginner
schedule: evenings
equipment: bodyweight, dumbbells
health: none
diet: vegetarian
cuisine: North Indian
budget: 3000 INR
days: 4`

// Bot wraps the Telegram API around the application controller. It is a
// render surface only: every state change goes through the controller.
type Bot struct {
	api          *tgbotapi.BotAPI
	coachApp     *app.App
	previewer    *videolink.Previewer
	metricsStore *metrics.Store
	cfg          *config.Config

	mu             sync.Mutex
	awaitingAccess map[int64]bool
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, coachApp *app.App, previewer *videolink.Previewer, metricsStore *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:            api,
		coachApp:       coachApp,
		previewer:      previewer,
		metricsStore:   metricsStore,
		cfg:            cfg,
		awaitingAccess: make(map[int64]bool),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/start":
		b.handleStart(msg.Chat.ID)
	case msg.Text == "/plan":
		b.send(msg.Chat.ID, profileHelp)
	case msg.Text == "/history":
		b.handleHistory(msg.Chat.ID)
	case strings.HasPrefix(msg.Text, "/log"):
		b.handleLog(msg.Chat.ID, msg.Text)
	case msg.Text == "/reset":
		b.coachApp.ResetPlan()
		b.send(msg.Chat.ID, "♻️ Plan discarded. Send a profile with /plan to generate a new one.")
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	default:
		if b.isAwaitingAccess(msg.Chat.ID) {
			b.handleAccessReply(msg.Chat.ID, msg.Text)
			return
		}
		b.handleProfileSubmission(msg.Chat.ID, msg.Text)
	}
}

func (b *Bot) handleStart(chatID int64) {
	if b.coachApp.State() != app.StateUnauthorized {
		b.send(chatID, fmt.Sprintf("💪 Welcome back, *%s*! Send /plan for the profile template, /history for your log.", b.coachApp.UserName()))
		return
	}
	b.promptAccess(chatID)
}

func (b *Bot) promptAccess(chatID int64) {
	b.mu.Lock()
	b.awaitingAccess[chatID] = true
	b.mu.Unlock()

	if b.cfg.AccessNameOnly {
		b.send(chatID, "🔐 Before we start: what is your *name*?")
		return
	}
	b.send(chatID, "🔐 Before we start: reply with your *name, email* (email optional).")
}

func (b *Bot) isAwaitingAccess(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.awaitingAccess[chatID]
}

func (b *Bot) handleAccessReply(chatID int64, text string) {
	name, email, _ := strings.Cut(text, ",")
	if b.cfg.AccessNameOnly {
		email = ""
	}

	if err := b.coachApp.Authorize(name, strings.TrimSpace(email)); err != nil {
		b.send(chatID, fmt.Sprintf("❌ %v — try again.", err))
		return
	}

	b.mu.Lock()
	delete(b.awaitingAccess, chatID)
	b.mu.Unlock()

	b.send(chatID, fmt.Sprintf("✅ You're in, *%s*! Send /plan for the profile template.", b.coachApp.UserName()))
}

func (b *Bot) handleProfileSubmission(chatID int64, text string) {
	profile, err := parseProfile(text)
	if err != nil {
		b.send(chatID, fmt.Sprintf("🤔 I couldn't read that profile: %v\n\n%s", err, profileHelp))
		return
	}

	statusMsg, err := b.api.Send(b.message(chatID, "🧑‍🏫 *Thinking...* \n(Building your workout and diet plan)"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()
	plan, err := b.coachApp.GeneratePlan(ctx, profile)
	if err != nil {
		b.editStatus(chatID, statusMsg.MessageID, b.describeFailure(err))
		if errors.Is(err, app.ErrNotAuthorized) {
			b.promptAccess(chatID)
		}
		return
	}

	previewCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	titles := b.previewer.Annotate(previewCtx, plan, 3)
	cancel()

	workout, diet, advice := formatPlanParts(plan, titles)
	b.editStatus(chatID, statusMsg.MessageID, workout)
	b.send(chatID, diet)
	b.send(chatID, advice)
}

// describeFailure maps controller and service errors to user-facing text.
// Only the missing-credential case is actionable; the rest surface the
// provider's message and invite a retry.
func (b *Bot) describeFailure(err error) string {
	switch {
	case errors.Is(err, app.ErrNotAuthorized):
		return "🔐 You need access first."
	case errors.Is(err, app.ErrGenerationInFlight):
		return "⏳ Still working on your previous plan — hang tight."
	case isMissingCredential(err):
		return "🔑 *AI key missing.* Set GEMINI_API_KEY in the environment and restart the bot."
	default:
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		return fmt.Sprintf("❌ *Plan generation failed:*\n```\n%v\n```\nResubmit your profile to retry.", safeErr)
	}
}

func (b *Bot) handleLog(chatID int64, text string) {
	entry, err := parseLogEntry(text)
	if err != nil {
		b.send(chatID, fmt.Sprintf("🤔 I couldn't read that log: %v\n\nExample:\n/log\nweight: 70\ncompleted: yes\nexercises: Bench Press 10x40 8x50", err))
		return
	}

	if err := b.coachApp.SaveLogEntry(context.Background(), entry); err != nil {
		b.send(chatID, fmt.Sprintf("❌ Failed to save the log entry: %v", err))
		return
	}

	reply := fmt.Sprintf("📝 Logged *%s* at %.1fkg.", entry.Date, entry.BodyWeight)
	for _, pb := range entry.PersonalBests {
		reply += fmt.Sprintf("\n🏅 New best for %s: %.1fkg", pb.Exercise, pb.Weight)
	}
	b.send(chatID, reply)
}

func (b *Bot) handleHistory(chatID int64) {
	if err := b.coachApp.OpenHistory(); err != nil {
		b.send(chatID, "🔐 You need access first. Send /start.")
		return
	}
	defer b.coachApp.CloseHistory()

	entries, err := b.coachApp.Logs(context.Background())
	if err != nil {
		b.send(chatID, fmt.Sprintf("❌ Failed to load history: %v", err))
		return
	}
	b.send(chatID, formatHistory(entries))
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.send(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.send(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DataDir)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")
	sb.WriteString("🗓 *Recent Generations*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d plans)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}
	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.send(msg.Chat.ID, sb.String())
}

func isMissingCredential(err error) bool {
	return errors.Is(err, coach.ErrMissingCredential)
}

func (b *Bot) message(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return msg
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(b.message(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}
