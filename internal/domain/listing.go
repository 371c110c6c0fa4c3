package domain

import "time"

// Listing is a master's bookable service offering.
type Listing struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	MasterID    int64     `gorm:"index;not null" json:"master_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"index" json:"category"`
	PriceBase   float64   `gorm:"not null" json:"price_base"`
	City        string    `json:"city,omitempty"`
	Active      bool      `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }
