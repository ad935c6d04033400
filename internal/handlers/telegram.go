package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/metrics"
	"storebot/internal/state"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Users interface {
	Touch(ctx context.Context, id int64, username, locale string) error
}

type Locales interface {
	For(languageCode string) *i18n.Localizer
}

type Deps struct {
	API        API
	Router     *Router
	Users      Users
	States     state.Store
	StateTTL   time.Duration
	Locales    Locales
	Logger     *zap.Logger
	Metrics    *metrics.BotMetrics
	Dispatcher *Dispatcher
	// HandleTimeout bounds one update, including those drained on shutdown.
	HandleTimeout time.Duration
}

type Bot struct {
	Deps
}

func NewBot(d Deps) *Bot {
	if d.Dispatcher == nil {
		d.Dispatcher = NewDispatcher(8, 64)
	}
	if d.HandleTimeout <= 0 {
		d.HandleTimeout = 30 * time.Second
	}
	return &Bot{Deps: d}
}

// HandleUpdates long-polls Telegram until ctx is cancelled, then waits for
// updates already queued. Queued updates run detached from ctx so they can
// still reach the database after shutdown starts.
func (b *Bot) HandleUpdates(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.API.GetUpdatesChan(u)

	b.Dispatcher.Start()
	defer b.Dispatcher.Stop()

	jobCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			chatID := update.FromChat()
			if chatID == nil {
				continue
			}
			err := b.Dispatcher.Submit(ctx, chatID.ID, func() {
				ctx, cancel := context.WithTimeout(jobCtx, b.HandleTimeout)
				defer cancel()
				b.Handle(ctx, update)
			})
			if err != nil {
				b.Logger.Warn("drop update", zap.Int("update_id", update.UpdateID), zap.Error(err))
			}
		}
	}
}

// Handle processes one update: builds the chat context, routes it and renders the replies.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	c, callback := b.context(ctx, update)
	if c == nil {
		return
	}

	if err := b.Users.Touch(ctx, c.UserID, c.Username, c.T.Tag().String()); err != nil {
		b.Logger.Warn("touch user", zap.Int64("user_id", c.UserID), zap.Error(err))
	}

	started := time.Now()
	route, replies, err := b.Router.Route(c)
	b.Metrics.Observe(route, started, err)

	action := c.Action
	if action == "" {
		action = route
	}
	if err != nil {
		b.Logger.Error("handle update",
			zap.Int64("user_id", c.UserID), zap.String("username", c.Username),
			zap.String("action", action), zap.Error(err))
		replies = chat.Alert(c.T.T(i18n.ErrorGeneric))
	} else {
		b.Logger.Info("update",
			zap.Int64("user_id", c.UserID), zap.String("username", c.Username), zap.String("action", action))
	}

	b.render(c, callback, replies)
}

func (b *Bot) context(ctx context.Context, update tgbotapi.Update) (*chat.Context, *tgbotapi.CallbackQuery) {
	var (
		from     *tgbotapi.User
		c        = &chat.Context{Ctx: ctx}
		callback = update.CallbackQuery
	)
	switch {
	case callback != nil:
		if callback.Message == nil {
			return nil, nil
		}
		from = callback.From
		c.ChatID = callback.Message.Chat.ID
		c.Action = callback.Data
	case update.Message != nil:
		msg := update.Message
		from = msg.From
		c.ChatID = msg.Chat.ID
		c.Text = strings.TrimSpace(msg.Text)
		if len(msg.Photo) > 0 {
			c.PhotoID = msg.Photo[len(msg.Photo)-1].FileID // самое большое разрешение
			c.Text = strings.TrimSpace(msg.Caption)
		}
	default:
		return nil, nil
	}
	if from == nil {
		return nil, nil
	}

	c.UserID = from.ID
	c.Username = from.UserName
	if c.Username == "" {
		c.Username = from.FirstName
	}
	c.State = state.NewHandle(b.States, from.ID, b.StateTTL)
	c.T = b.Locales.For(from.LanguageCode)
	return c, callback
}

// render sends replies. For a button press the first plain text reply edits
// the pressed message, and the first alert answers the callback.
func (b *Bot) render(c *chat.Context, callback *tgbotapi.CallbackQuery, replies []chat.Reply) {
	var alert string
	edited := false

	for _, r := range replies {
		if r.Alert != "" {
			if callback != nil {
				if alert == "" {
					alert = r.Alert
				}
				continue
			}
			if r.Text == "" {
				r.Text = r.Alert
			}
		}
		chatID := c.ChatID
		if r.To != 0 {
			chatID = r.To
		}

		var err error
		switch {
		case r.Document != nil:
			err = b.sendDocument(chatID, r)
		case r.PhotoID != "" && callback != nil && !edited && r.To == 0 && len(callback.Message.Photo) > 0:
			edited = true
			if err = b.editCaption(callback.Message, r); err != nil {
				b.Logger.Debug("edit caption, sending new photo", zap.Error(err))
				err = b.sendPhoto(chatID, r)
			}
		case r.PhotoID != "":
			err = b.sendPhoto(chatID, r)
		case r.Text == "":
			continue
		case callback != nil && !edited && r.To == 0:
			edited = true
			if err = b.edit(callback.Message, r); err != nil {
				b.Logger.Debug("edit message, sending new one", zap.Error(err))
				err = b.sendText(chatID, r)
			}
		default:
			err = b.sendText(chatID, r)
		}
		if err != nil {
			b.Logger.Error("send reply", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	if callback != nil {
		answer := tgbotapi.NewCallback(callback.ID, "")
		if alert != "" {
			answer = tgbotapi.NewCallbackWithAlert(callback.ID, alert)
		}
		if _, err := b.API.Request(answer); err != nil {
			b.Logger.Warn("answer callback", zap.Int64("user_id", c.UserID), zap.Error(err))
		}
	}
}

func (b *Bot) sendText(chatID int64, r chat.Reply) error {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if kb := keyboard(r.Keyboard); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := b.API.Send(msg)
	return err
}

func (b *Bot) edit(orig *tgbotapi.Message, r chat.Reply) error {
	if orig.Text == "" {
		return fmt.Errorf("message %d has no text to edit", orig.MessageID)
	}
	msg := tgbotapi.NewEditMessageText(orig.Chat.ID, orig.MessageID, r.Text)
	msg.ReplyMarkup = keyboard(r.Keyboard)
	_, err := b.API.Send(msg)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

// editCaption updates the caption and buttons of a photo message in place,
// e.g. the quantity picker on a product card.
func (b *Bot) editCaption(orig *tgbotapi.Message, r chat.Reply) error {
	msg := tgbotapi.NewEditMessageCaption(orig.Chat.ID, orig.MessageID, r.Text)
	msg.ReplyMarkup = keyboard(r.Keyboard)
	_, err := b.API.Send(msg)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (b *Bot) sendPhoto(chatID int64, r chat.Reply) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(r.PhotoID))
	msg.Caption = r.Text
	if kb := keyboard(r.Keyboard); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := b.API.Send(msg)
	if err != nil {
		// битый file_id не должен прятать карточку товара
		b.Logger.Warn("send photo, falling back to text", zap.String("file_id", r.PhotoID), zap.Error(err))
		return b.sendText(chatID, r)
	}
	return nil
}

// sendDocument uploads a temporary file and removes it afterwards.
func (b *Bot) sendDocument(chatID int64, r chat.Reply) error {
	defer os.Remove(r.Document.Path)

	f, err := os.Open(r.Document.Path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileReader{Name: r.Document.Name, Reader: f})
	msg.Caption = r.Document.Caption
	if kb := keyboard(r.Keyboard); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err = b.API.Send(msg)
	return err
}

func keyboard(rows [][]chat.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	var kb [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		var buttons []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Action))
		}
		kb = append(kb, buttons)
	}
	if len(kb) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(kb...)
	return &markup
}
