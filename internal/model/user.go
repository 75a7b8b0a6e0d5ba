package model

import "time"

// User represents a technician who owns a training log.
type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Email          string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name           string `json:"name" gorm:"size:255"`
	EmployeeNumber string `json:"employee_number,omitempty" gorm:"size:64"`
	PasswordHash   string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Admin          bool   `json:"admin" gorm:"default:false"`

	// Outstanding password-reset token, if any. Single use, expiry checked
	// on redemption.
	ResetToken          *string    `json:"-" gorm:"size:36;uniqueIndex"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
