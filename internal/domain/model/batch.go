package model

import (
	"math"
	"time"
)

// Batch is a cohort of birds received together.
//
// Quantity holds the birds not yet allocated to any house. OriginalCount is
// fixed at creation; losses are tracked separately in Dead, Culled and Offlaid.
type Batch struct {
	ID            string    `bson:"_id" json:"id"`
	FarmID        string    `bson:"farm_id" json:"farmId"`
	Name          string    `bson:"name" json:"name" example:"Layers March"`
	ArrivalDate   time.Time `bson:"arrival_date" json:"arrivalDate"`
	AgeAtArrival  int       `bson:"age_at_arrival" json:"ageAtArrival" example:"1"`
	Age           int       `bson:"age" json:"age" example:"12"`
	ChickenType   string    `bson:"chicken_type" json:"chickenType" example:"Isa Brown"`
	Supplier      string    `bson:"supplier,omitempty" json:"supplier,omitempty"`
	OriginalCount int       `bson:"original_count" json:"originalCount" example:"1000"`
	Quantity      int       `bson:"quantity" json:"quantity" example:"200"`
	Dead          int       `bson:"dead" json:"dead"`
	Culled        int       `bson:"culled" json:"culled"`
	Offlaid       int       `bson:"offlaid" json:"offlaid"`
	IsArchived    bool      `bson:"is_archived" json:"isArchived"`
	Version       int64     `bson:"version" json:"version"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Losses returns the birds removed from the batch for any reason.
func (b *Batch) Losses() int {
	return b.Dead + b.Culled + b.Offlaid
}

// CurrentCount returns the living birds still part of the batch.
func (b *Batch) CurrentCount() int {
	n := b.OriginalCount - b.Losses()
	if n < 0 {
		return 0
	}
	return n
}

// AgeAt returns the batch age in weeks at the given instant.
func (b *Batch) AgeAt(now time.Time) int {
	if now.Before(b.ArrivalDate) {
		return b.AgeAtArrival
	}
	weeks := now.Sub(b.ArrivalDate).Hours() / (24 * 7)
	return b.AgeAtArrival + int(math.Floor(weeks))
}
