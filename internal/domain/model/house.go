package model

import "time"

// House types.
const (
	HouseTypeCaged      = "Caged"
	HouseTypeDeepLitter = "Deep Litter"
)

// House is a building birds are allocated to.
//
// Capacity is optional; a nil capacity means the house is unbounded.
// Occupancy is the sum of all allocation quantities referencing the house and
// is only ever changed inside the same transaction as those allocations.
type House struct {
	ID          string    `bson:"_id" json:"id"`
	FarmID      string    `bson:"farm_id" json:"farmId"`
	Name        string    `bson:"name" json:"name" example:"House A"`
	Capacity    *int      `bson:"capacity,omitempty" json:"capacity,omitempty" example:"500"`
	HouseType   string    `bson:"house_type" json:"houseType" example:"Caged"`
	IsMonitored bool      `bson:"is_monitored" json:"isMonitored"`
	Occupancy   int       `bson:"occupancy" json:"occupancy"`
	Version     int64     `bson:"version" json:"version"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Fits reports whether the house can take delta more birds.
func (h *House) Fits(delta int) bool {
	if h.Capacity == nil {
		return true
	}
	return h.Occupancy+delta <= *h.Capacity
}

// ValidHouseType reports whether t is a known house type.
func ValidHouseType(t string) bool {
	return t == HouseTypeCaged || t == HouseTypeDeepLitter
}
