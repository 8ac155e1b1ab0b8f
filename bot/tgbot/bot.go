package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/teammaker/bot/botstorage"
	botmodel "github.com/goserg/teammaker/bot/model"
	"github.com/goserg/teammaker/internal/config"
	"github.com/goserg/teammaker/internal/service"
)

const commandTimeout = 30 * time.Second

type Bot struct {
	bot *tgbotapi.BotAPI

	botStorage botstorage.BotStorage
	log        *logrus.Entry

	commands *Commands

	// workers bounds the number of updates handled at once
	workers chan struct{}
	wg      sync.WaitGroup
}

func New(rs *service.RosterService, bs botstorage.BotStorage, cfg config.Config, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.TgBot.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}

	return &Bot{
		bot:        bot,
		botStorage: bs,
		log:        log.WithField("from", "tg_bot"),
		commands:   NewCommands(rs),
		workers:    make(chan struct{}, max(cfg.Bot.TgBot.Workers, 1)),
	}, nil
}

// Run polls updates until ctx is done and then waits for the commands
// still in progress.
func (b *Bot) Run(ctx context.Context) {
	defer b.wg.Wait()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("bot started")

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			b.log.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			select {
			case b.workers <- struct{}{}:
			case <-ctx.Done():
				continue
			}
			b.wg.Add(1)
			go func() {
				defer func() {
					<-b.workers
					b.wg.Done()
				}()
				b.handleMessage(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	tgUser := update.SentFrom()
	if tgUser == nil {
		return
	}
	chat := update.Message.Chat
	name := update.Message.Command()
	req := Request{
		ChannelID: strconv.FormatInt(chat.ID, 10),
		User: botmodel.User{
			ID:        tgUser.ID,
			FirstName: tgUser.FirstName,
			Username:  tgUser.UserName,
			Role:      botmodel.RoleMember,
		},
		Args: update.Message.CommandArguments(),
	}
	log := b.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"channel_id": req.ChannelID,
		"user":       req.User.DisplayName(),
		"command":    name,
	})

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	if command, ok := b.commands.Get(name); ok && !command.Permission().Contains(botmodel.RoleMember) {
		req.User.Role = b.roleOf(ctx, chat, tgUser.ID)
	}

	text, err := b.commands.RunCommand(ctx, name, req)
	failed := err != nil
	if failed {
		log.WithError(err).Warn("command failed")
		text = errorText(err)
	}

	err = b.botStorage.Log(context.WithoutCancel(ctx), botmodel.LogEntry{
		ChannelID: req.ChannelID,
		User:      req.User,
		Command:   name,
		Args:      req.Args,
		Failed:    failed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.WithError(err).Error("can't log to db")
	}

	msg := tgbotapi.NewMessage(chat.ID, text)
	msg.ReplyToMessageID = update.Message.MessageID
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

// roleOf reports whether the user administers the chat. Everyone is the
// administrator of a private chat with the bot.
func (b *Bot) roleOf(ctx context.Context, chat *tgbotapi.Chat, userID int64) botmodel.UserRole {
	if chat.IsPrivate() {
		return botmodel.RoleAdmin
	}
	if ctx.Err() != nil {
		return botmodel.RoleMember
	}
	member, err := b.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chat.ID,
			UserID: userID,
		},
	})
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Warn("unable to get chat member")
		return botmodel.RoleMember
	}
	if member.IsCreator() || member.IsAdministrator() {
		return botmodel.RoleAdmin
	}
	return botmodel.RoleMember
}
