package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"course_portal_backend/internal/scheduler"
	"course_portal_backend/platform/config"
	"course_portal_backend/platform/logger"
	"course_portal_backend/platform/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const channelTelegram = "telegram"

// Sender is the part of the Telegram bot API used for broadcasts.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Broadcaster posts new-lead messages to every configured group.
type Broadcaster struct {
	sender Sender
	groups []string
	log    *logger.Logger
}

// NewBroadcaster authenticates the bot. It returns nil when Telegram is not
// configured.
func NewBroadcaster(cfg config.TelegramConfig, log *logger.Logger) (*Broadcaster, error) {
	if !cfg.IsTelegramEnabled() {
		return nil, nil
	}

	endpoint := tgbotapi.APIEndpoint
	if base := strings.TrimRight(cfg.GetTelegramAPIBaseURL(), "/"); base != "" {
		endpoint = base + "/bot%s/%s"
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.GetTelegramBotToken(), endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	log.Info("telegram bot authorized", "username", bot.Self.UserName, "groups", len(cfg.GetTelegramGroupIDs()))

	return NewBroadcasterWithSender(bot, cfg.GetTelegramGroupIDs(), log), nil
}

// NewBroadcasterWithSender builds a broadcaster over an existing sender.
func NewBroadcasterWithSender(sender Sender, groups []string, log *logger.Logger) *Broadcaster {
	return &Broadcaster{sender: sender, groups: groups, log: log}
}

// NotifyGroups sends the lead message to each group. Delivery is best
// effort: a failing group does not stop the others and is never retried.
func (b *Broadcaster) NotifyGroups(ctx context.Context, payload scheduler.NotifyGroupsPayload) error {
	if b == nil {
		return nil
	}

	text := RenderLeadMessage(payload)
	var failed int
	for _, group := range b.groups {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msg, err := newGroupMessage(group, text)
		if err == nil {
			_, err = b.sender.Send(msg)
		}
		if err != nil {
			failed++
			metrics.RecordNotificationError(channelTelegram)
			b.log.WithContext(ctx).Warn("telegram broadcast failed", "error", err, "group", group, "leadId", payload.LeadID)
		}
	}

	b.log.WithContext(ctx).Info("lead broadcast sent", "leadId", payload.LeadID, "groups", len(b.groups), "failed", failed)
	return nil
}

// newGroupMessage addresses numeric chat ids and @channel usernames.
func newGroupMessage(group, text string) (tgbotapi.MessageConfig, error) {
	group = strings.TrimSpace(group)
	if strings.HasPrefix(group, "@") {
		return tgbotapi.NewMessageToChannel(group, text), nil
	}
	chatID, err := strconv.ParseInt(group, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, errors.New("invalid telegram group id")
	}
	return tgbotapi.NewMessage(chatID, text), nil
}
