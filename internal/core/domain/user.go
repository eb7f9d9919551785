package domain

import "time"

// User is a storefront account, managed from the admin back-office.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // customer, admin
	CreatedAt time.Time `json:"created_at"`
}
