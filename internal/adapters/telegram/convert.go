package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/frediicrewii/facting/internal/domain"
)

// captionLimit — лимит Bot API на подпись к фото.
const captionLimit = 1024

// convertUpdate переводит апдейт Bot API в доменное событие.
// Апдейты без чата (inline-запросы и т.п.) пропускаются.
func convertUpdate(upd tgbotapi.Update) (domain.Event, bool) {
	switch {
	case upd.Message != nil && upd.Message.Chat != nil:
		return domain.Event{Kind: domain.EventMessage, Chat: chatDescriptor(*upd.Message.Chat)}, true
	case upd.ChannelPost != nil && upd.ChannelPost.Chat != nil:
		return domain.Event{Kind: domain.EventMessage, Chat: chatDescriptor(*upd.ChannelPost.Chat)}, true
	case upd.MyChatMember != nil:
		return domain.Event{
			Kind:      domain.EventMembership,
			Chat:      chatDescriptor(upd.MyChatMember.Chat),
			NewStatus: domain.MemberStatus(upd.MyChatMember.NewChatMember.Status),
		}, true
	default:
		return domain.Event{}, false
	}
}

func chatDescriptor(chat tgbotapi.Chat) domain.ChatDescriptor {
	return domain.ChatDescriptor{
		ID:        strconv.FormatInt(chat.ID, 10),
		Kind:      domain.ParseChatKind(chat.Type),
		Title:     chat.Title,
		Username:  chat.UserName,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
	}
}

// clampCaption обрезает подпись до лимита Bot API по рунам.
func clampCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= captionLimit {
		return caption
	}
	return string(runes[:captionLimit])
}
