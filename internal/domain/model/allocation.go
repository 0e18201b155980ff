package model

import "time"

// Allocation records how many birds of a batch live in a house.
// There is at most one allocation per (batch, house) pair. A zero quantity
// is a valid state and the record is kept.
type Allocation struct {
	ID        string    `bson:"_id" json:"id"`
	BatchID   string    `bson:"batch_id" json:"batchId"`
	HouseID   string    `bson:"house_id" json:"houseId"`
	Quantity  int       `bson:"quantity" json:"quantity" example:"40"`
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
