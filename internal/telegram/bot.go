// Package telegram connects the chain cache to a live chat: it watches the
// incoming message stream for bot commands and answers with generated replies.
package telegram

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"charliebot/internal/cache"
	"charliebot/internal/logparse"
	"charliebot/internal/reply"
)

// command is a recognized bot command: the nick to impersonate and where the
// reply goes. target is false when the message has no resolvable chat.
type command struct {
	nick   string
	chatID int64
	target bool
}

// parseCommand decides whether msg is a bot command. The text after the
// prefix, trimmed and normalized, is the nick argument.
func parseCommand(prefix string, msg *tgbotapi.Message) (command, bool) {
	if msg == nil || !strings.HasPrefix(msg.Text, prefix) {
		return command{}, false
	}
	cmd := command{nick: logparse.Normalize(msg.Text[len(prefix):])}
	if msg.Chat != nil {
		cmd.chatID = msg.Chat.ID
		cmd.target = true
	}
	return cmd, true
}

type Bot struct {
	api    *tgbotapi.BotAPI
	s      sender
	cache  *cache.Cache
	policy reply.Policy
	prefix string
	rng    *rand.Rand
}

func New(botToken, prefix string, c *cache.Cache, policy reply.Policy) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		s:      botAPISender{api: api},
		cache:  c,
		policy: policy,
		prefix: prefix,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Start consumes the update stream until it closes or ctx is cancelled.
// Messages are handled sequentially, one at a time.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	cmd, ok := parseCommand(b.prefix, msg)
	if !ok {
		return
	}
	log.Printf(">>> chat command detected for %q", cmd.nick)

	chain, ok := b.cache.Lookup(cmd.nick)
	if !ok {
		log.Printf("no chain found for %q", cmd.nick)
		return
	}
	if !cmd.target {
		return
	}

	out := b.policy.Select(chain, b.rng)
	log.Printf(">>> reply %q", out)
	b.sendMessage(cmd.chatID, out)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
