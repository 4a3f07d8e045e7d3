package domain

import "time"

// TimestampLayout matches the millisecond UTC ISO-8601 form used for createdAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the calendar date form used for dates of birth.
const DateLayout = "2006-01-02"

// Timestamp formats t for persistence.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// User is the persisted account record. Password holds an Argon2id PHC string.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	DOB       string `json:"dob"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
	IsActive  bool   `json:"isActive"`
	HasPhoto  bool   `json:"hasPhoto"`
}

// UserDraft is what registration hands to the record store. Every field but
// PhotoData is required. Password is plaintext and never serialised; when
// PasswordHash is set the record store uses it as is.
type UserDraft struct {
	Email        string `json:"email"        validate:"required"`
	Password     string `json:"-"`
	PasswordHash string `json:"passwordHash" validate:"required_without=Password"`
	Name         string `json:"name"         validate:"required,min=2"`
	DOB          string `json:"dob"          validate:"required,datetime=2006-01-02"`
	Role         Role   `json:"role"         validate:"required,oneof=capitao juiz jogador"`
	PhotoData    string `json:"photoData,omitempty"`
}
