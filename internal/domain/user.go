package domain

import "time"

// User represents a persisted user record.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Role         Role      `db:"role" json:"role"`
	SocietyID    *string   `db:"society_id" json:"society_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Society scopes all transactions and users.
type Society struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
}
