package handlers

import (
	"storebot/internal/admin"
	"storebot/internal/chat"
	"storebot/internal/checkout"
	"storebot/internal/profile"
	"storebot/internal/shop"
)

// Routes registers every command, button and text step of the bot.
// Main menu navigation and /start abandon whatever flow is in progress.
func Routes(s *shop.Shop, flow *checkout.Flow, p *profile.Profile, a *admin.Admin) *Router {
	r := NewRouter(Resetting(s.MainMenu))

	r.Callbacks(s.Routes())
	r.Callbacks(p.Routes())
	r.Callbacks(a.Routes())
	for _, action := range checkout.Actions() {
		r.Callback(action, flow.HandleAction)
	}

	r.Callback(chat.ActionMainMenu, Resetting(s.MainMenu))
	r.Callback(chat.ActionCatalog, Resetting(s.Categories))
	r.Callback(checkout.ActionCancel, flow.Cancel)

	r.Command("start", Resetting(s.MainMenu))
	r.Command("cancel", Resetting(s.MainMenu))
	r.Command("help", s.Help)
	r.Command("start_admin", a.Login)

	r.Step(checkout.StepPrefix, flow.HandleText)
	r.Step(profile.StepPrefix, p.HandleText)
	r.Step(admin.StepPrefix, a.HandleText)
	return r
}
