package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductStatus constants
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents an item in the central catalog. Stock here is the shared
// pool that replenishment approvals draw from.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Stock       int             `gorm:"type:int;default:0;not null" json:"stock"`
	Images      []string        `gorm:"type:jsonb;serializer:json" json:"images"`
	CategoryIDs []string        `gorm:"type:jsonb;serializer:json" json:"category_ids"` // category ids only, never names
	Status      string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active, inactive
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Category represents a node in the product category hierarchy. A nil ParentID
// marks a root. Parent references are validated at write time.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CategoryNode is a category with its children resolved, as returned by the
// tree endpoints.
type CategoryNode struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	ParentID      *uuid.UUID      `json:"parent_id"`
	SubCategories []*CategoryNode `json:"sub_categories"`
}
