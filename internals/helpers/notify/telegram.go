package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"trainingcenter_backend/internals/configs"
)

// Notifier delivers short operator messages. Failures are logged, never returned to callers.
type Notifier interface {
	Notify(text string)
}

type Nop struct{}

func (Nop) Notify(string) {}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// NewTelegram returns Nop when token or chat id is missing.
func NewTelegram(token, chatID string) (Notifier, error) {
	token, chatID = strings.TrimSpace(token), strings.TrimSpace(chatID)
	if token == "" || chatID == "" {
		return Nop{}, nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	log.Printf("[INFO] telegram notifications enabled as @%s", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: id}, nil
}

func (t *Telegram) Notify(text string) {
	go func() {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.bot.Send(msg); err != nil {
			log.Printf("[WARN] telegram notify: %v", err)
		}
	}()
}

func NewLeadMessage(fullName, phone, course, wilaya string) string {
	return fmt.Sprintf("New lead: %s (%s)\nCourse: %s\nWilaya: %s", fullName, phone, course, wilaya)
}

func NewTraineeMessage(fullName, course, paid, rest string) string {
	return fmt.Sprintf("New trainee: %s\nCourse: %s\nPaid: %s, rest: %s", fullName, course, paid, rest)
}

var (
	sharedOnce sync.Once
	shared     Notifier = Nop{}
)

// Shared builds the process-wide notifier from TELEGRAM_* settings on first use.
func Shared() Notifier {
	sharedOnce.Do(func() {
		n, err := NewTelegram(configs.TelegramBotToken, configs.TelegramChatID)
		if err != nil {
			log.Printf("[WARN] telegram disabled: %v", err)
			return
		}
		shared = n
	})
	return shared
}
