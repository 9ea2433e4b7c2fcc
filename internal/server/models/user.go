package models

import "time"

// User is the stored account record. It is never written to clients
// directly; use Public.
type User struct {
	ID           string `json:"id"`
	UserName     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// ResetTokenHash is the SHA-256 hex of an outstanding reset token.
	// Both reset fields are nil when no reset is pending.
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Settings:  u.Settings,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Settings struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

func DefaultSettings() Settings {
	return Settings{Currency: DefaultCurrency, CurrencySymbol: currencies[DefaultCurrency]}
}
