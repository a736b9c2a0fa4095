package bot

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"auticonnect/internal/service"
)

// Bot aggregates the Telegram API with the services behind each command.
// It keeps no per-user conversation state: every inbound update is handled
// atomically and ends in exactly one reply.
type Bot struct {
	api         *tgbotapi.BotAPI
	identity    *service.IdentityService
	groupSvc    *service.GroupService
	activitySvc *service.ActivityService
	reminderSvc *service.ReminderService
	loc         *time.Location
}

func New(token string, identity *service.IdentityService, groupSvc *service.GroupService, activitySvc *service.ActivityService, reminderSvc *service.ReminderService, loc *time.Location) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	if loc == nil {
		loc = time.Local
	}

	return &Bot{
		api:         api,
		identity:    identity,
		groupSvc:    groupSvc,
		activitySvc: activitySvc,
		reminderSvc: reminderSvc,
		loc:         loc,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	return b.sendText(msg.Chat.ID, "Não entendi a mensagem. Use /ajuda para ver os comandos disponíveis.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "ajuda", "help":
		return b.handleHelp(ctx, msg)
	case "grupos":
		return b.handleListGroups(ctx, msg)
	case "entrar_grupo":
		return b.handleJoinGroup(ctx, msg)
	case "atividades":
		return b.handleListActivities(ctx, msg)
	case "criar_grupo":
		return b.handleCreateGroup(ctx, msg)
	case "iniciar_atividade":
		return b.handleCreateActivity(ctx, msg)
	default:
		return b.sendText(msg.Chat.ID, "Comando não reconhecido. Use /ajuda para ver os comandos disponíveis.")
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(msg.Text)
	switch text {
	case menuLabelGroups:
		return true, b.handleListGroups(ctx, msg)
	case menuLabelActivities:
		return true, b.handleListActivities(ctx, msg)
	case menuLabelHelp:
		return true, b.handleHelp(ctx, msg)
	default:
		return false, nil
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbRolePrefix):
		log.Printf("[info] callback role user=%d role=%s", cb.From.ID, strings.TrimPrefix(data, cbRolePrefix))
		return b.registerWithRole(ctx, cb.Message.Chat.ID, cb.From, strings.TrimPrefix(data, cbRolePrefix))
	case strings.HasPrefix(data, cbJoinPrefix):
		log.Printf("[info] callback join user=%d group=%s", cb.From.ID, strings.TrimPrefix(data, cbJoinPrefix))
		return b.joinGroup(ctx, cb.Message.Chat.ID, cb.From.ID, strings.TrimPrefix(data, cbJoinPrefix))
	default:
		return nil
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}
