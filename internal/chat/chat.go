// Package chat holds the transport-neutral types every handler works with:
// the per-update Context it receives and the Replies it returns.
package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storebot/internal/i18n"
	"storebot/internal/state"
)

// Context is passed unchanged to every handler.
type Context struct {
	Ctx      context.Context
	UserID   int64
	ChatID   int64
	Username string
	Text     string // текст сообщения, пусто для кнопок
	Action   string // callback data, пусто для сообщений
	PhotoID  string
	State    state.Handle
	T        *i18n.Localizer
}

// IsCallback reports whether the update was a button press.
func (c *Context) IsCallback() bool { return c.Action != "" }

type Button struct {
	Label  string
	Action string
}

func Btn(label, action string) Button { return Button{Label: label, Action: action} }

type Document struct {
	Path    string
	Name    string
	Caption string
}

type Reply struct {
	Text     string
	PhotoID  string
	Document *Document
	Keyboard [][]Button
	// Alert is shown as a popup on the pressed button instead of a message.
	Alert string
	// To sends the reply to another chat, used for notifications.
	To int64
}

type HandlerFunc func(c *Context) ([]Reply, error)

func Text(text string, rows ...[]Button) []Reply {
	return []Reply{{Text: text, Keyboard: rows}}
}

func Alert(text string) []Reply {
	return []Reply{{Alert: text}}
}

func Row(buttons ...Button) []Button { return buttons }

// Forbidden is what every admin handler returns to a non-admin.
func Forbidden(t *i18n.Localizer) []Reply {
	return []Reply{{Alert: t.T(i18n.Forbidden), Text: t.T(i18n.Forbidden)}}
}

// Action builds callback data like "product_12_3".
func Action(prefix string, args ...int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, a := range args {
		b.WriteString("_")
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

// Args parses the integers after prefix, "product_12_3" -> [12 3].
func Args(data, prefix string) ([]int, error) {
	rest := strings.TrimPrefix(strings.TrimPrefix(data, prefix), "_")
	if rest == "" {
		return nil, nil
	}
	parts := strings.Split(rest, "_")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad callback %q: %w", data, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Arg returns the i-th integer argument or def when absent.
func Arg(data, prefix string, i, def int) int {
	args, err := Args(data, prefix)
	if err != nil || i >= len(args) {
		return def
	}
	return args[i]
}
