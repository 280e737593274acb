package services

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Channel is the messaging capability the intake flow and the dashboard
// consume: send a text, forward a stored document by its reference, and
// resolve a reference to a downloadable URL.
type Channel interface {
	SendText(chatID int64, text string) error
	SendDocument(chatID int64, fileID, caption string) error
	FileURL(fileID string) (string, error)
}

// InboundDocument describes a document attached to an inbound message.
type InboundDocument struct {
	FileID   string
	FileName string
	FileSize int64
}

// Inbound is one normalized incoming message. Command is set (without the
// leading slash) when the message is a bot command, Document when the user
// sent a file.
type Inbound struct {
	ChatID   int64
	Username string
	Text     string
	Command  string
	Document *InboundDocument
}

// TelegramChannel implements Channel over the Bot API.
type TelegramChannel struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

// NewTelegramChannel authorizes against the Bot API. requestTimeout bounds
// every outbound call, which is also the per-recipient bound during
// notification fan-out.
func NewTelegramChannel(token string, requestTimeout time.Duration, log *zap.Logger) (*TelegramChannel, error) {
	client := &http.Client{Timeout: requestTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram authorize: %w", err)
	}
	log.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))
	return &TelegramChannel{bot: bot, log: log}, nil
}

func (t *TelegramChannel) SendText(chatID int64, text string) error {
	if chatID == 0 {
		t.log.Warn("send skipped, empty chat id")
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sendMessage to %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramChannel) SendDocument(chatID int64, fileID, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	doc.Caption = caption
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("sendDocument to %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramChannel) FileURL(fileID string) (string, error) {
	url, err := t.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("getFile %s: %w", fileID, err)
	}
	return url, nil
}

// Updates opens the long-poll stream of incoming updates.
func (t *TelegramChannel) Updates(pollTimeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	return t.bot.GetUpdatesChan(u)
}

// InboundFromUpdate normalizes a raw update into an Inbound. Returns false
// for updates that carry no message (edits, callbacks and the like).
func InboundFromUpdate(update tgbotapi.Update) (*Inbound, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil, false
	}
	in := &Inbound{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		in.Username = msg.From.UserName
	}
	if msg.IsCommand() {
		in.Command = msg.Command()
	}
	if msg.Document != nil {
		in.Document = &InboundDocument{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
			FileSize: int64(msg.Document.FileSize),
		}
	}
	return in, true
}
