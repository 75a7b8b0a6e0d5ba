package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Entry is one logged unit of training time. Entries are immutable after
// creation except for the verification fields, which are flipped exactly
// once by a successful redemption.
type Entry struct {
	ID       uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID   uint            `json:"user_id" gorm:"not null;index"`
	Date     time.Time       `json:"date" gorm:"type:date;not null"`
	Location string          `json:"location" gorm:"size:255;not null"`
	Method   Method          `json:"method" gorm:"type:varchar(10);not null;index"`
	Hours    decimal.Decimal `json:"hours" gorm:"type:decimal(5,1);not null"`

	Verified   bool       `json:"verified" gorm:"default:false;index"`
	VerifiedBy string     `json:"verified_by,omitempty" gorm:"size:255"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	// Set when a verification request is outstanding or has been fulfilled.
	// Unique across all entries; the replay guard is the Verified flag, not
	// token deletion, so a consumed token stays in place.
	VerificationToken *string `json:"-" gorm:"size:36;uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
