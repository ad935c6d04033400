// Package profile lets a customer keep name, phone and address for reuse
// at checkout. Changes are collected into a draft and saved only on confirm.
package profile

import (
	"context"
	"errors"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/repo"
	"storebot/internal/validate"
)

const StepPrefix = "profile:"

const (
	StepName        = StepPrefix + "name"
	StepPhone       = StepPrefix + "phone"
	StepAddress     = StepPrefix + "address"
	StepConfirm     = StepPrefix + "confirm"
	StepEditName    = StepPrefix + "edit_name"
	StepEditPhone   = StepPrefix + "edit_phone"
	StepEditAddress = StepPrefix + "edit_address"
)

const (
	ActionCreate      = "create_profile"
	ActionEdit        = "edit_profile"
	ActionEditName    = "profile_edit_name"
	ActionEditPhone   = "profile_edit_phone"
	ActionEditAddress = "profile_edit_address"
	ActionConfirm     = "confirm_profile"
	ActionCancel      = "profile_cancel"
)

type Users interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	SaveProfile(ctx context.Context, user *models.User) error
}

type draft struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Profile struct {
	users Users
}

func New(users Users) *Profile {
	return &Profile{users: users}
}

func (p *Profile) user(ctx context.Context, id int64) (*models.User, error) {
	u, err := p.users.UserByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return &models.User{ID: id}, nil
	}
	return u, err
}

// Show displays saved data, or offers to fill it in when incomplete.
func (p *Profile) Show(c *chat.Context) ([]chat.Reply, error) {
	u, err := p.user(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if !u.ProfileComplete() {
		return chat.Text(c.T.T(i18n.ProfileEmpty),
			chat.Row(chat.Btn(c.T.T(i18n.BtnCreateProfile), ActionCreate)),
			chat.MainMenuRow(c.T),
		), nil
	}
	return chat.Text(c.T.T(i18n.ProfileView, u.FullName, u.Phone, addressOrDash(u.Address)),
		chat.Row(chat.Btn(c.T.T(i18n.BtnEditProfile), ActionEdit)),
		chat.MainMenuRow(c.T),
	), nil
}

func (p *Profile) Create(c *chat.Context) ([]chat.Reply, error) {
	if err := c.State.Save(c.Ctx, StepName, draft{}); err != nil {
		return nil, err
	}
	return ask(c.T, StepName), nil
}

// Edit starts from the saved data and goes straight to the summary.
func (p *Profile) Edit(c *chat.Context) ([]chat.Reply, error) {
	u, err := p.user(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	d := draft{Name: u.FullName, Phone: u.Phone, Address: u.Address}
	return p.confirm(c, d)
}

// EditField handles the per-field buttons on the summary.
func (p *Profile) EditField(c *chat.Context) ([]chat.Reply, error) {
	var d draft
	step, err := c.State.Load(c.Ctx, &d)
	if err != nil {
		return nil, err
	}
	if step != StepConfirm {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}
	next := map[string]string{
		ActionEditName:    StepEditName,
		ActionEditPhone:   StepEditPhone,
		ActionEditAddress: StepEditAddress,
	}[c.Action]
	if err := c.State.Save(c.Ctx, next, d); err != nil {
		return nil, err
	}
	return ask(c.T, next), nil
}

func (p *Profile) Confirm(c *chat.Context) ([]chat.Reply, error) {
	var d draft
	step, err := c.State.Load(c.Ctx, &d)
	if err != nil {
		return nil, err
	}
	if step != StepConfirm {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}
	u := &models.User{ID: c.UserID, FullName: d.Name, Phone: d.Phone, Address: d.Address}
	if err := p.users.SaveProfile(c.Ctx, u); err != nil {
		return nil, err
	}
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	replies, err := p.Show(c)
	if err != nil {
		return nil, err
	}
	return append(chat.Alert(c.T.T(i18n.ProfileSaved)), replies...), nil
}

func (p *Profile) Cancel(c *chat.Context) ([]chat.Reply, error) {
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	return p.Show(c)
}

// HandleText processes input for profile:* steps.
func (p *Profile) HandleText(c *chat.Context) ([]chat.Reply, error) {
	var d draft
	step, err := c.State.Load(c.Ctx, &d)
	if err != nil {
		return nil, err
	}

	switch step {
	case StepName, StepEditName:
		name, ok := validate.Name(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.InvalidName), cancelRow(c.T)), nil
		}
		d.Name = name
		if step == StepName {
			return p.save(c, StepPhone, d)
		}
	case StepPhone, StepEditPhone:
		phone, ok := validate.Phone(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.InvalidPhone), cancelRow(c.T)), nil
		}
		d.Phone = phone
		if step == StepPhone {
			return p.save(c, StepAddress, d)
		}
	case StepAddress, StepEditAddress:
		address, ok := validate.Address(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.InvalidAddress), cancelRow(c.T)), nil
		}
		d.Address = address
	case StepConfirm:
		return chat.Text(c.T.T(i18n.UseButtons)), nil
	default:
		return nil, nil
	}
	return p.confirm(c, d)
}

func (p *Profile) save(c *chat.Context, step string, d draft) ([]chat.Reply, error) {
	if err := c.State.Save(c.Ctx, step, d); err != nil {
		return nil, err
	}
	return ask(c.T, step), nil
}

func (p *Profile) confirm(c *chat.Context, d draft) ([]chat.Reply, error) {
	if err := c.State.Save(c.Ctx, StepConfirm, d); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.ProfileConfirm, d.Name, d.Phone, addressOrDash(d.Address)),
		chat.Row(chat.Btn(c.T.T(i18n.BtnConfirm), ActionConfirm)),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnEditName), ActionEditName),
			chat.Btn(c.T.T(i18n.BtnEditPhone), ActionEditPhone),
			chat.Btn(c.T.T(i18n.BtnEditAddress), ActionEditAddress),
		),
		cancelRow(c.T),
	), nil
}

func ask(t *i18n.Localizer, step string) []chat.Reply {
	key := map[string]i18n.Key{
		StepName:        i18n.AskName,
		StepEditName:    i18n.AskName,
		StepPhone:       i18n.AskPhone,
		StepEditPhone:   i18n.AskPhone,
		StepAddress:     i18n.AskAddress,
		StepEditAddress: i18n.AskAddress,
	}[step]
	return chat.Text(t.T(key), cancelRow(t))
}

func cancelRow(t *i18n.Localizer) []chat.Button {
	return chat.Row(chat.Btn(t.T(i18n.BtnCancel), ActionCancel))
}

func addressOrDash(a string) string {
	if a == "" {
		return models.NotSpecified
	}
	return a
}

func (p *Profile) Routes() map[string]chat.HandlerFunc {
	return map[string]chat.HandlerFunc{
		chat.ActionProfile: p.Show,
		ActionCreate:       p.Create,
		ActionEdit:         p.Edit,
		ActionEditName:     p.EditField,
		ActionEditPhone:    p.EditField,
		ActionEditAddress:  p.EditField,
		ActionConfirm:      p.Confirm,
		ActionCancel:       p.Cancel,
	}
}
