package channel

import (
	"net/http"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stellarlinkco/lawclerk/internal/bus"
	"github.com/stellarlinkco/lawclerk/internal/config"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
}

func (f *fakeBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeBot) StopReceivingUpdates() {}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) GetSelf() tgbotapi.User {
	return tgbotapi.User{UserName: "lawclerk_test_bot"}
}

func newTestTelegramChannel(t *testing.T, allowFrom []string, b *bus.MessageBus) *TelegramChannel {
	t.Helper()
	factory := func(token string, client *http.Client) (TelegramBot, error) {
		return &fakeBot{}, nil
	}
	ch, err := NewTelegramChannelWithFactory(
		config.TelegramConfig{Token: "fake-token", AllowFrom: allowFrom}, b, factory)
	if err != nil {
		t.Fatalf("NewTelegramChannelWithFactory error: %v", err)
	}
	return ch
}

func makeMessage(fromID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: fromID, UserName: "alice"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Date: 1700000000,
	}
}

func TestTelegramHandleMessage(t *testing.T) {
	b := bus.NewMessageBus(10)
	ch := newTestTelegramChannel(t, nil, b)

	ch.handleMessage(makeMessage(42, 100, "I got a speeding ticket"))

	select {
	case msg := <-b.Inbound:
		if msg.Channel != "telegram" {
			t.Errorf("channel = %q, want telegram", msg.Channel)
		}
		if msg.SenderID != "42" || msg.ChatID != "100" {
			t.Errorf("sender/chat = %q/%q, want 42/100", msg.SenderID, msg.ChatID)
		}
		if msg.Content != "I got a speeding ticket" {
			t.Errorf("content = %q", msg.Content)
		}
	default:
		t.Fatal("no inbound message published")
	}
}

func TestTelegramHandleMessageRejected(t *testing.T) {
	b := bus.NewMessageBus(10)
	ch := newTestTelegramChannel(t, []string{"7"}, b)

	ch.handleMessage(makeMessage(42, 100, "hello"))

	select {
	case msg := <-b.Inbound:
		t.Fatalf("unexpected inbound message: %+v", msg)
	default:
	}
}

func TestTelegramHandleMessageDocument(t *testing.T) {
	b := bus.NewMessageBus(10)
	ch := newTestTelegramChannel(t, nil, b)

	msg := makeMessage(42, 100, "")
	msg.Caption = "my lease"
	msg.Document = &tgbotapi.Document{FileName: "lease.pdf"}
	ch.handleMessage(msg)

	select {
	case got := <-b.Inbound:
		if got.Content != "my lease" {
			t.Errorf("content = %q, want caption", got.Content)
		}
		if len(got.Files) != 1 || got.Files[0] != "lease.pdf" {
			t.Errorf("files = %v, want [lease.pdf]", got.Files)
		}
	default:
		t.Fatal("no inbound message published")
	}
}

func TestTelegramSend(t *testing.T) {
	b := bus.NewMessageBus(10)
	ch := newTestTelegramChannel(t, nil, b)
	bot := &fakeBot{}
	ch.SetBot(bot)

	err := ch.Send(bus.OutboundMessage{Channel: "telegram", ChatID: "100", Content: "**done**"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(bot.sent))
	}
	tgMsg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent type = %T", bot.sent[0])
	}
	if !strings.Contains(tgMsg.Text, "<b>done</b>") {
		t.Errorf("text = %q, want bold markup", tgMsg.Text)
	}
}

func TestTelegramSendInvalidChatID(t *testing.T) {
	b := bus.NewMessageBus(10)
	ch := newTestTelegramChannel(t, nil, b)
	ch.SetBot(&fakeBot{})

	if err := ch.Send(bus.OutboundMessage{ChatID: "not-a-number"}); err == nil {
		t.Fatal("invalid chat id should be an error")
	}
}
