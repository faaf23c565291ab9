package entities

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Timestamp
}

// RegularUser and Admin are the two mutually exclusive role sets an account
// belongs to.
type RegularUser struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey" json:"account_id"`
	CreatedAt time.Time `json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID"`
}

type Admin struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey" json:"account_id"`
	AdminName string    `json:"admin_name"`
	CreatedAt time.Time `json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID"`
}

type UserRestriction struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey" json:"account_id"`
	Tag       string    `gorm:"primaryKey;size:32" json:"tag"`

	Account *Account `gorm:"foreignKey:AccountID"`
}
