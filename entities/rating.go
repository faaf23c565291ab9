package entities

import "github.com/google/uuid"

// Rating holds one live rating per (account, recipe); re-rating overwrites Value.
type Rating struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey" json:"account_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipe_id"`
	Value     int       `gorm:"not null" json:"rating"`

	Account *Account `gorm:"foreignKey:AccountID"`
	Recipe  *Recipe  `gorm:"foreignKey:RecipeID"`
	Timestamp
}
