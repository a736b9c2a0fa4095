package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"auticonnect/internal/service"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		return b.registerWithRole(ctx, msg.Chat.ID, msg.From, args)
	}

	if user, err := b.identity.Lookup(ctx, msg.From.ID); err == nil {
		text := fmt.Sprintf(
			"Olá, %s! Bem-vindo de volta ao AutiConnect Bot.\n\n"+
				"O que você gostaria de fazer hoje?\n\n"+
				"• /grupos — ver grupos disponíveis\n"+
				"• /atividades — ver atividades programadas\n"+
				"• /ajuda — ver todos os comandos",
			escape(user.Name),
		)
		return b.sendText(msg.Chat.ID, text)
	}

	text := "Olá! Sou o AutiConnect Bot. Estou aqui para ajudar pessoas autistas " +
		"a interagirem em um ambiente seguro e estruturado.\n\n" +
		"Você é uma pessoa autista ou um Auxiliar Terapêutico (AT)?"
	return b.sendWithReplyMarkup(msg.Chat.ID, text, roleKeyboard())
}

func (b *Bot) registerWithRole(ctx context.Context, chatID int64, from *tgbotapi.User, roleText string) error {
	role, ok := parseRole(roleText)
	if !ok {
		return b.sendText(chatID, replyForError(service.ErrInvalidRole))
	}

	user, err := b.identity.Register(ctx, from.ID, displayName(from), role)
	if err != nil {
		return b.sendText(chatID, replyForError(err))
	}

	log.Printf("[info] user registered id=%d role=%s", user.TelegramID, user.Role)

	if user.IsAT() {
		return b.sendText(chatID, fmt.Sprintf(
			"Perfil de AT criado com sucesso, %s!\n\n"+
				"Como Auxiliar Terapêutico, você pode:\n"+
				"• Ver grupos disponíveis com /grupos\n"+
				"• Ver atividades programadas com /atividades\n"+
				"• Criar novos grupos com /criar_grupo\n"+
				"• Programar atividades estruturadas com /iniciar_atividade",
			escape(user.Name),
		))
	}

	return b.sendText(chatID, fmt.Sprintf(
		"Perfil criado com sucesso, %s!\n\n"+
			"Agora você pode:\n"+
			"• Ver grupos disponíveis com /grupos\n"+
			"• Entrar em um grupo com /entrar_grupo\n"+
			"• Ver atividades programadas com /atividades",
		escape(user.Name),
	))
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Comandos</b>\n" +
		"• /start — registrar ou atualizar seu perfil\n" +
		"• /grupos — ver grupos disponíveis\n" +
		"• /entrar_grupo &lt;nome&gt; — entrar em um grupo\n" +
		"• /atividades — ver as próximas atividades do seu grupo\n"

	if user, err := b.identity.Lookup(ctx, msg.From.ID); err == nil && user.IsAT() {
		text += "\nComandos de AT:\n" +
			"• /criar_grupo &lt;nome&gt;[; tema[; descrição[; vagas]]]\n" +
			"• /iniciar_atividade &lt;grupo&gt;; &lt;título&gt;; &lt;AAAA-MM-DD HH:MM&gt;[; descrição[; duração]]"
	}

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleListGroups(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.identity.Lookup(ctx, msg.From.ID); err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	infos, err := b.groupSvc.ListGroups(ctx)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	if len(infos) == 0 {
		return b.sendText(msg.Chat.ID,
			"Não há grupos disponíveis no momento.\n\n"+
				"Se você é um AT, pode criar um novo grupo com /criar_grupo.")
	}

	return b.sendWithReplyMarkup(msg.Chat.ID, formatGroupList(infos), joinKeyboard(infos))
}

func (b *Bot) handleJoinGroup(ctx context.Context, msg *tgbotapi.Message) error {
	ref := strings.TrimSpace(msg.CommandArguments())
	if ref == "" {
		return b.sendText(msg.Chat.ID, "Informe o nome do grupo: /entrar_grupo Música")
	}
	return b.joinGroup(ctx, msg.Chat.ID, msg.From.ID, ref)
}

func (b *Bot) joinGroup(ctx context.Context, chatID int64, telegramID int64, ref string) error {
	group, err := b.groupSvc.JoinGroup(ctx, telegramID, ref)
	if err != nil {
		return b.sendText(chatID, replyForError(err))
	}

	log.Printf("[info] user %d joined group %d", telegramID, group.ID)
	return b.sendText(chatID, fmt.Sprintf(
		"✅ Você entrou no grupo <b>%s</b>!\nUse /atividades para ver as próximas atividades.",
		escape(group.Name),
	))
}

func (b *Bot) handleListActivities(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.identity.Lookup(ctx, msg.From.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}
	if user.GroupID == nil {
		return b.sendText(msg.Chat.ID, replyForError(service.ErrNoGroup))
	}

	group, err := b.groupSvc.GetByID(ctx, *user.GroupID)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	activities, err := b.activitySvc.ListUpcoming(ctx, msg.From.ID)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	if len(activities) == 0 {
		return b.sendText(msg.Chat.ID, fmt.Sprintf(
			"O grupo <b>%s</b> não tem atividades programadas no momento.",
			escape(group.Name),
		))
	}

	return b.sendText(msg.Chat.ID, formatActivityList(group.Name, activities, time.Now().In(b.loc)))
}

func (b *Bot) handleCreateGroup(ctx context.Context, msg *tgbotapi.Message) error {
	args := splitArgs(msg.CommandArguments())
	if len(args) == 0 || args[0] == "" {
		return b.sendText(msg.Chat.ID,
			"Informe o nome do grupo: /criar_grupo Música\n"+
				"Opcional: /criar_grupo Música; Sons e instrumentos; Grupo para quem ama música; 8")
	}

	input := service.GroupInput{Name: args[0]}
	if len(args) > 1 {
		input.Theme = args[1]
	}
	if len(args) > 2 {
		input.Description = args[2]
	}
	if len(args) > 3 {
		max, err := strconv.Atoi(args[3])
		if err != nil || max <= 0 {
			return b.sendText(msg.Chat.ID, "O número de vagas deve ser um número positivo, por exemplo 8.")
		}
		input.MaxMembers = max
	}

	group, err := b.groupSvc.CreateGroup(ctx, msg.From.ID, input)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	log.Printf("[info] group created id=%d name=%q by=%d", group.ID, group.Name, msg.From.ID)
	return b.sendText(msg.Chat.ID, fmt.Sprintf(
		"✅ Grupo <b>%s</b> criado com sucesso! (vagas: %d)\n"+
			"Os participantes podem entrar com /entrar_grupo %s.",
		escape(group.Name), group.MaxMembers, escape(group.Name),
	))
}

func (b *Bot) handleCreateActivity(ctx context.Context, msg *tgbotapi.Message) error {
	usage := "Use: /iniciar_atividade &lt;grupo&gt;; &lt;título&gt;; &lt;AAAA-MM-DD HH:MM&gt;\n" +
		"Exemplo: /iniciar_atividade Música; Sessão de improviso; 2026-09-01 15:00"

	args := splitArgs(msg.CommandArguments())
	if len(args) < 3 {
		return b.sendText(msg.Chat.ID, usage)
	}

	when, err := parseWhen(args[2], b.loc)
	if err != nil {
		return b.sendText(msg.Chat.ID,
			"Não entendi a data. Use o formato <code>AAAA-MM-DD HH:MM</code>, por exemplo <code>2026-09-01 15:00</code>.")
	}

	input := service.ActivityInput{
		GroupRef:     args[0],
		Title:        args[1],
		ScheduledFor: when,
	}
	if len(args) > 3 {
		input.Description = args[3]
	}
	if len(args) > 4 {
		minutes, err := strconv.Atoi(args[4])
		if err != nil || minutes <= 0 {
			return b.sendText(msg.Chat.ID, "A duração deve ser um número de minutos, por exemplo 45.")
		}
		input.Duration = minutes
	}

	activity, err := b.activitySvc.CreateActivity(ctx, msg.From.ID, input)
	if err != nil {
		return b.sendText(msg.Chat.ID, replyForError(err))
	}

	log.Printf("[info] activity created id=%d group=%d by=%d", activity.ID, activity.GroupID, msg.From.ID)
	return b.sendText(msg.Chat.ID, fmt.Sprintf(
		"✅ Atividade <b>%s</b> programada para %s.",
		escape(activity.Title),
		activity.ScheduledFor.In(b.loc).Format("02/01/2006 15:04"),
	))
}

// SendActivityReminders pushes the upcoming-activity digest of every group
// to its members. Called periodically from the cron job.
func (b *Bot) SendActivityReminders(ctx context.Context) error {
	broadcasts, err := b.reminderSvc.Broadcasts(ctx, time.Now().In(b.loc))
	if err != nil {
		return err
	}
	for _, broadcast := range broadcasts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(broadcast.ChatID, broadcast.Text); err != nil {
			log.Printf("send reminder to %d: %v", broadcast.ChatID, err)
		}
	}
	return nil
}

func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if name == "" {
		name = strings.TrimSpace(from.UserName)
	}
	return name
}
