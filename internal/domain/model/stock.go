package model

import "time"

// Stock categories.
const (
	StockCategoryFeed      = "Feed"
	StockCategoryEquipment = "Equipment"
)

// Stock is an inventory line held by a farm.
type Stock struct {
	ID        string    `bson:"_id" json:"id"`
	FarmID    string    `bson:"farm_id" json:"farmId"`
	Item      string    `bson:"item" json:"item" example:"Layer mash"`
	Category  string    `bson:"category" json:"category" example:"Feed"`
	Quantity  float64   `bson:"quantity" json:"quantity" example:"25"`
	Threshold float64   `bson:"threshold" json:"threshold" example:"10"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsLow reports whether the stock has reached its reorder threshold.
func (s *Stock) IsLow() bool {
	return s.Quantity <= s.Threshold
}

// ValidStockCategory reports whether c is a known stock category.
func ValidStockCategory(c string) bool {
	return c == StockCategoryFeed || c == StockCategoryEquipment
}
