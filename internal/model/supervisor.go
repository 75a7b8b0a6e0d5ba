package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificationLevel is a supervisor's certification grade.
type CertificationLevel string

const (
	CertificationLevelI   CertificationLevel = "Level I"
	CertificationLevelII  CertificationLevel = "Level II"
	CertificationLevelIII CertificationLevel = "Level III"
)

// Valid reports whether l is one of the known certification levels.
func (l CertificationLevel) Valid() bool {
	switch l {
	case CertificationLevelI, CertificationLevelII, CertificationLevelIII:
		return true
	}
	return false
}

// Supervisor is a verifier contact saved to one user's bank for reuse
// across verification requests.
type Supervisor struct {
	ID                 uuid.UUID          `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uint               `json:"user_id" gorm:"not null;index"`
	Name               string             `json:"name" gorm:"size:255;not null"`
	Email              string             `json:"email" gorm:"size:255;not null"`
	Phone              string             `json:"phone" gorm:"size:32;not null"`
	CertificationLevel CertificationLevel `json:"certification_level" gorm:"type:varchar(20);not null"`
	Company            string             `json:"company" gorm:"size:255;not null"`
	CreatedAt          time.Time          `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Supervisor) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
