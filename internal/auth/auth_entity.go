package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is the login identity of one registry employee.
type Credential struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string         `gorm:"type:varchar(255);not null"`
	Role       string         `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	IsActive   bool           `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Credential) TableName() string {
	return "credentials"
}
