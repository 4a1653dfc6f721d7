package telegram

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"charliebot/internal/cache"
	"charliebot/internal/logparse"
	"charliebot/internal/markov"
	"charliebot/internal/reply"
	"charliebot/internal/store"
	"charliebot/internal/train"
)

type fakeSender struct {
	sent    []string
	chatIDs []int64
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	mc := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, mc.Text)
	f.chatIDs = append(f.chatIDs, mc.ChatID)
	return tgbotapi.Message{}, nil
}

func newTestBot(t *testing.T, s *store.Store, fs *fakeSender) *Bot {
	t.Helper()
	return &Bot{
		s:      fs,
		cache:  cache.New(s, 20*time.Second),
		policy: reply.Default(),
		prefix: "!charlie",
		rng:    rand.New(rand.NewSource(1)),
	}
}

func savedStore(t *testing.T, nick, msg string) *store.Store {
	t.Helper()
	s := store.New(t.TempDir())
	c := markov.New()
	c.Feed(msg)
	if err := s.SaveAll(map[string]*markov.Chain{nick: c}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	return s
}

func TestParseCommand(t *testing.T) {
	chat := &tgbotapi.Chat{ID: 42}
	cmd, ok := parseCommand("!charlie", &tgbotapi.Message{Chat: chat, Text: "!charlie @Bob>"})
	if !ok || cmd.nick != "bob" || cmd.chatID != 42 || !cmd.target {
		t.Fatalf("unexpected command: %+v ok=%v", cmd, ok)
	}

	if _, ok := parseCommand("!charlie", &tgbotapi.Message{Chat: chat, Text: "hello world"}); ok {
		t.Fatalf("plain message recognized as command")
	}
	if _, ok := parseCommand("!charlie", nil); ok {
		t.Fatalf("nil message recognized as command")
	}

	cmd, ok = parseCommand("!charlie", &tgbotapi.Message{Text: "!charlie bob"})
	if !ok || cmd.target {
		t.Fatalf("message without chat should parse but carry no target: %+v ok=%v", cmd, ok)
	}
}

func TestNonCommandIgnored(t *testing.T) {
	fs := &fakeSender{}
	b := newTestBot(t, savedStore(t, "bob", "a perfectly normal message from bob"), fs)
	b.handleIncomingMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "just chatting"})
	if len(fs.sent) != 0 {
		t.Fatalf("non-command produced a reply: %v", fs.sent)
	}
}

func TestUnknownNickGetsNoReply(t *testing.T) {
	fs := &fakeSender{}
	b := newTestBot(t, store.New(t.TempDir()), fs)
	b.handleIncomingMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "!charlie ghost"})
	if len(fs.sent) != 0 {
		t.Fatalf("unknown nick produced a reply: %v", fs.sent)
	}
}

func TestKnownNickAlwaysAnswers(t *testing.T) {
	fs := &fakeSender{}
	// "hi" is far below the length floor, so the fallback is the only answer
	b := newTestBot(t, savedStore(t, "bob", "hi"), fs)
	b.handleIncomingMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}, Text: "!charlie bob"})
	if len(fs.sent) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(fs.sent))
	}
	if fs.sent[0] != b.policy.Fallback {
		t.Fatalf("expected fallback, got %q", fs.sent[0])
	}
	if fs.chatIDs[0] != 7 {
		t.Fatalf("reply went to chat %d, want 7", fs.chatIDs[0])
	}
}

func TestMissingTargetDropsReply(t *testing.T) {
	fs := &fakeSender{}
	b := newTestBot(t, savedStore(t, "bob", "a perfectly normal message here"), fs)
	b.handleIncomingMessage(&tgbotapi.Message{Text: "!charlie bob"})
	if len(fs.sent) != 0 {
		t.Fatalf("reply sent despite missing target: %v", fs.sent)
	}
}

func TestGenerateThenServe(t *testing.T) {
	// build path: raw log -> parser -> chains -> store
	logText := "2024-01-01 10:00:00 <Bob> this is a perfectly normal length reply\n" +
		"2024-01-01 10:00:01 --> alice has joined\n"
	chains := train.Build(logparse.NewParser(strings.NewReader(logText)))
	s := store.New(t.TempDir())
	if err := s.SaveAll(chains); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	// serve path: command -> cache -> reply -> transport
	fs := &fakeSender{}
	b := newTestBot(t, s, fs)
	b.handleIncomingMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 99}, Text: "!charlie Bob"})

	if len(fs.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(fs.sent))
	}
	if fs.sent[0] != "this is a perfectly normal length reply" {
		t.Fatalf("unexpected reply %q", fs.sent[0])
	}
	if fs.chatIDs[0] != 99 {
		t.Fatalf("reply went to chat %d, want 99", fs.chatIDs[0])
	}
}
