package handlers

import (
	"sort"
	"strings"

	"storebot/internal/chat"
	"storebot/internal/i18n"
)

const (
	routeStale    = "stale"
	routeFallback = "fallback"
)

// Router picks a handler for an update. Buttons go by the longest registered
// prefix of the callback data, commands by name, and free text by the prefix
// of the user's current step.
type Router struct {
	callbacks map[string]chat.HandlerFunc
	prefixes  []string // longest first
	commands  map[string]chat.HandlerFunc
	steps     map[string]chat.HandlerFunc
	fallback  chat.HandlerFunc
}

func NewRouter(fallback chat.HandlerFunc) *Router {
	return &Router{
		callbacks: make(map[string]chat.HandlerFunc),
		commands:  make(map[string]chat.HandlerFunc),
		steps:     make(map[string]chat.HandlerFunc),
		fallback:  fallback,
	}
}

func (r *Router) Callback(prefix string, h chat.HandlerFunc) {
	if _, ok := r.callbacks[prefix]; !ok {
		r.prefixes = append(r.prefixes, prefix)
		sort.Slice(r.prefixes, func(i, j int) bool { return len(r.prefixes[i]) > len(r.prefixes[j]) })
	}
	r.callbacks[prefix] = h
}

func (r *Router) Callbacks(routes map[string]chat.HandlerFunc) {
	for prefix, h := range routes {
		r.Callback(prefix, h)
	}
}

func (r *Router) Command(name string, h chat.HandlerFunc) {
	r.commands[name] = h
}

// Step routes text sent while the user's step starts with prefix.
func (r *Router) Step(prefix string, h chat.HandlerFunc) {
	r.steps[prefix] = h
}

func (r *Router) match(data string) (string, bool) {
	for _, p := range r.prefixes {
		if data == p || strings.HasPrefix(data, p+"_") {
			return p, true
		}
	}
	return "", false
}

// command extracts "start_admin" from "/start_admin@shop_bot secret".
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	name, _, _ = strings.Cut(name, "@")
	return name
}

// Route runs the matching handler and returns the route name used for logs and metrics.
func (r *Router) Route(c *chat.Context) (string, []chat.Reply, error) {
	if c.IsCallback() {
		prefix, ok := r.match(c.Action)
		if !ok {
			return routeStale, chat.Alert(c.T.T(i18n.StaleButton)), nil
		}
		replies, err := r.callbacks[prefix](c)
		return prefix, replies, err
	}

	if name := command(c.Text); name != "" {
		if h, ok := r.commands[name]; ok {
			replies, err := h(c)
			return "/" + name, replies, err
		}
		replies, err := r.fallback(c)
		return routeFallback, replies, err
	}

	step, err := c.State.Step(c.Ctx)
	if err != nil {
		return "", nil, err
	}
	for prefix, h := range r.steps {
		if step != "" && strings.HasPrefix(step, prefix) {
			replies, err := h(c)
			return prefix, replies, err
		}
	}
	replies, err := r.fallback(c)
	return routeFallback, replies, err
}

// Resetting clears the conversation state before running h. Used for
// navigation that abandons any flow in progress.
func Resetting(h chat.HandlerFunc) chat.HandlerFunc {
	return func(c *chat.Context) ([]chat.Reply, error) {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return h(c)
	}
}
