package chat

import (
	"fmt"

	"github.com/samber/lo"

	"storebot/internal/i18n"
)

const ButtonsInRow = 5

// Menu actions shared across packages.
const (
	ActionMainMenu = "menu_main"
	ActionCatalog  = "menu_catalog"
	ActionCart     = "cart"
	ActionMyOrders = "my_orders"
	ActionProfile  = "profile"
	ActionAdmin    = "admin_menu"
	ActionHelp     = "help"
)

// PageNav builds the "← 2/5 →" row. action(page) returns callback data for a zero-based page.
func PageNav(t *i18n.Localizer, current, total int, action func(page int) string) []Button {
	var nav []Button
	if current > 0 {
		nav = append(nav, Btn(t.T(i18n.BtnPrev), action(current-1)))
	}
	nav = append(nav, Btn(fmt.Sprintf("%d/%d", current+1, total), action(current)))
	if current < total-1 {
		nav = append(nav, Btn(t.T(i18n.BtnNext), action(current+1)))
	}
	return nav
}

// Grid lays buttons out ButtonsInRow per row.
func Grid(buttons []Button) [][]Button {
	return lo.Chunk(buttons, ButtonsInRow)
}

// Column puts each button on its own row.
func Column(buttons []Button) [][]Button {
	return lo.Map(buttons, func(b Button, _ int) []Button { return []Button{b} })
}

func MainMenuRow(t *i18n.Localizer) []Button {
	return Row(Btn(t.T(i18n.BtnMainMenu), ActionMainMenu))
}
