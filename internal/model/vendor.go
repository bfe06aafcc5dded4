package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorizedUser is an account allowed to act on behalf of a vendor. The list
// is stored embedded on the vendor row, mirroring how the admin console edits
// it as a single unit.
type AuthorizedUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Vendor represents a dealer with its own stock ledger, distinct from the
// central catalog. HasOrders is a derived cache flag: true iff at least one
// linked import request is still pending.
type Vendor struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     string           `gorm:"type:text" json:"description"`
	Address         string           `gorm:"type:text;not null" json:"address"`
	Province        string           `gorm:"type:varchar(100);not null" json:"province"`
	Phone           string           `gorm:"type:varchar(50);not null" json:"phone"`
	Logo            string           `gorm:"type:text" json:"logo"`
	HasOrders       bool             `gorm:"default:false" json:"has_orders"`
	AuthorizedUsers []AuthorizedUser `gorm:"type:jsonb;serializer:json" json:"authorized_users"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// VendorProduct is the per-(vendor, product) stock ledger entry accumulated by
// approved replenishment requests. Created lazily on first approval.
type VendorProduct struct {
	ID        string    `gorm:"type:varchar(80);primaryKey" json:"id"` // "{vendorID}_{productID}"
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Stock     int       `gorm:"type:int;not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VendorProductKey builds the composite ledger key for a (vendor, product) pair.
func VendorProductKey(vendorID, productID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", vendorID, productID)
}
