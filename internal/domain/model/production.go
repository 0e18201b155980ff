package model

import (
	"math"
	"time"
)

// EggsPerTray is the number of eggs in a full tray.
const EggsPerTray = 30

// Production is a daily production record for a batch.
type Production struct {
	ID                    string    `bson:"_id" json:"id"`
	FarmID                string    `bson:"farm_id" json:"farmId"`
	BatchID               string    `bson:"batch_id" json:"batchId"`
	Date                  time.Time `bson:"date" json:"date"`
	NumberOfDeadBirds     int       `bson:"number_of_dead_birds" json:"numberOfDeadBirds"`
	NumberOfEggsCollected int       `bson:"number_of_eggs_collected" json:"numberOfEggsCollected" example:"245"`
	Notes                 string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updatedAt"`
}

// TrayBreakdown splits an egg count into full trays and loose eggs.
type TrayBreakdown struct {
	Trays     int `json:"trays" example:"8"`
	ExtraEggs int `json:"extraEggs" example:"5"`
}

// Trays returns the egg count as full trays and remaining eggs.
func (p *Production) Trays() TrayBreakdown {
	return TrayBreakdown{
		Trays:     p.NumberOfEggsCollected / EggsPerTray,
		ExtraEggs: p.NumberOfEggsCollected % EggsPerTray,
	}
}

// ProductionRate returns eggs collected per living bird as a percentage,
// rounded to one decimal. A batch with no birds yields zero.
func ProductionRate(eggs, birds int) float64 {
	if birds <= 0 {
		return 0
	}
	rate := float64(eggs) / float64(birds) * 100
	return math.Round(rate*10) / 10
}
