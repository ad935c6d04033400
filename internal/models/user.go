package models

import (
	"strings"
	"time"
)

// NotSpecified заполняет пустые поля заказа и профиля.
const NotSpecified = "-"

type User struct {
	ID        int64     `json:"id"` // telegram user id
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}

func filled(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NotSpecified
}

// ProfileComplete reports whether name, phone and address are all set.
func (u *User) ProfileComplete() bool {
	if u == nil {
		return false
	}
	return filled(u.FullName) && filled(u.Phone) && filled(u.Address)
}

func (u *User) HasAddress() bool {
	return u != nil && filled(u.Address)
}
