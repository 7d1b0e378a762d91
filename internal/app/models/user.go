package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64              `json:"id" db:"id"`
	FullName           string             `json:"fullName" db:"full_name"`
	Email              string             `json:"email" db:"email"`
	Password           string             `json:"-" db:"password"`
	Role               Role               `json:"role" db:"role"`
	SubscriptionID     string             `json:"-" db:"subscription_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus" db:"subscription_status"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}
