package entities

import (
	"time"

	"github.com/google/uuid"
)

// Cookbook is created lazily, one per account, and shares the account's ID.
type Cookbook struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey" json:"account_id"`
	CreatedAt time.Time `json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID"`
}

type CookbookEntry struct {
	CookbookID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cookbook_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipe_id"`
	CreatedAt  time.Time `json:"created_at"`

	Cookbook *Cookbook `gorm:"foreignKey:CookbookID;references:AccountID"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID"`
}
