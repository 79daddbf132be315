package notify

import (
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m.Text)
	}
	close(f.done)
	return tgbotapi.Message{}, nil
}

func TestNewTelegramWithoutConfigIsNop(t *testing.T) {
	n, err := NewTelegram("", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := n.(Nop); !ok {
		t.Errorf("got %T, want Nop", n)
	}
	if _, err := NewTelegram("token", "not-a-number"); err == nil {
		t.Error("expected chat id error")
	}
}

func TestTelegramNotifySends(t *testing.T) {
	f := &fakeSender{done: make(chan struct{})}
	tg := &Telegram{bot: f, chatID: 42}
	tg.Notify(NewLeadMessage("Yacine", "0550", "Excel", "Oran"))

	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("message not sent")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) != 1 || f.sent[0] != "New lead: Yacine (0550)\nCourse: Excel\nWilaya: Oran" {
		t.Errorf("sent = %q", f.sent)
	}
}
