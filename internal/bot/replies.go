package bot

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"auticonnect/internal/model"
	"auticonnect/internal/service"
)

const (
	cbRolePrefix = "role:"
	cbJoinPrefix = "join:"
)

const (
	menuLabelGroups     = "📋 Grupos"
	menuLabelActivities = "📅 Atividades"
	menuLabelHelp       = "ℹ️ Ajuda"
	btnRoleAutistic     = "Pessoa Autista"
	btnRoleAT           = "Auxiliar Terapêutico (AT)"
)

// replyForError translates a service failure into the Portuguese text sent
// back to the user. Unknown errors get a generic try-again message.
func replyForError(err error) string {
	switch {
	case errors.Is(err, service.ErrNotRegistered):
		return "Você precisa se registrar primeiro. Use /start para criar seu perfil."
	case errors.Is(err, service.ErrInvalidRole):
		return "Papel inválido. Escolha «Pessoa Autista» ou «Auxiliar Terapêutico (AT)»."
	case errors.Is(err, service.ErrForbidden):
		return "Apenas Auxiliares Terapêuticos (ATs) podem fazer isso."
	case errors.Is(err, service.ErrInvalidGroup):
		return "O grupo precisa de um nome. Exemplo: /criar_grupo Música"
	case errors.Is(err, service.ErrDuplicateGroup):
		return "Já existe um grupo com esse nome. Escolha outro nome."
	case errors.Is(err, service.ErrGroupNotFound):
		return "Grupo não encontrado. Use /grupos para ver os grupos disponíveis."
	case errors.Is(err, service.ErrGroupFull):
		return "Este grupo já está cheio. Escolha outro grupo em /grupos."
	case errors.Is(err, service.ErrNoGroup):
		return "Você ainda não participa de um grupo. Use /grupos para escolher um."
	case errors.Is(err, service.ErrInvalidActivity):
		return "A atividade precisa de um título."
	case errors.Is(err, service.ErrInvalidSchedule):
		return "A data informada já passou. Escolha um horário futuro."
	default:
		return "Desculpe, ocorreu um erro. Por favor, tente novamente."
	}
}

// parseRole maps user input (command argument or button label) to a role.
func parseRole(text string) (model.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "autista", "pessoa autista":
		return model.RoleAutistic, true
	case "at", "auxiliar terapêutico", "auxiliar terapêutico (at)":
		return model.RoleAT, true
	default:
		return "", false
	}
}

// splitArgs separates ;-delimited command arguments, trimming each piece.
func splitArgs(text string) []string {
	parts := strings.Split(text, ";")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		args = append(args, strings.TrimSpace(part))
	}
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}
	return args
}

// parseWhen accepts "2006-01-02 15:04" and the Brazilian "02/01/2006 15:04".
func parseWhen(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range []string{"2006-01-02 15:04", "02/01/2006 15:04"} {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", text)
}

func formatGroupList(infos []service.GroupInfo) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Grupos Disponíveis</b>\n\n")
	for _, info := range infos {
		group := info.Group
		builder.WriteString(fmt.Sprintf("👥 <b>%s</b>", escape(group.Name)))
		if group.Theme != "" {
			builder.WriteString(fmt.Sprintf(" · %s", escape(group.Theme)))
		}
		builder.WriteByte('\n')
		if group.Description != "" {
			builder.WriteString(fmt.Sprintf("   %s\n", escape(group.Description)))
		}
		builder.WriteString(fmt.Sprintf("   Membros: %d/%d\n\n", info.Members, group.MaxMembers))
	}
	builder.WriteString("Toque em um botão para entrar em um grupo, ou use /entrar_grupo &lt;nome&gt;.")
	return strings.TrimSpace(builder.String())
}

func formatActivityList(groupName string, activities []model.Activity, now time.Time) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📅 <b>Próximas atividades de %s</b>\n\n", escape(groupName)))
	for _, activity := range activities {
		builder.WriteString(service.FormatActivity(activity, now))
	}
	return strings.TrimSpace(builder.String())
}

func roleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRoleAutistic, cbRolePrefix+string(model.RoleAutistic)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRoleAT, cbRolePrefix+string(model.RoleAT)),
		),
	)
}

func joinKeyboard(infos []service.GroupInfo) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, info := range infos {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Entrar: %s", info.Group.Name),
				fmt.Sprintf("%s%d", cbJoinPrefix, info.Group.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelGroups),
			tgbotapi.NewKeyboardButton(menuLabelActivities),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func escape(s string) string {
	return html.EscapeString(s)
}
