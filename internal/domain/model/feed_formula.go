package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient units.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitPercent  = "%"
)

// Target groups for a feed formula.
const (
	TargetChicks   = "chicks"
	TargetGrowers  = "growers"
	TargetLayers   = "layers"
	TargetBroilers = "broilers"
)

// Ingredient is one component of a feed formula. Cost is per unit.
type Ingredient struct {
	Name     string  `bson:"name" json:"name" example:"Maize"`
	Quantity float64 `bson:"quantity" json:"quantity" example:"50"`
	Unit     string  `bson:"unit" json:"unit" example:"kg"`
	Cost     float64 `bson:"cost" json:"cost" example:"0.35"`
}

// Nutrition holds nutrient targets for a formula.
type Nutrition struct {
	Protein    float64 `bson:"protein" json:"protein" example:"16.5"`
	Energy     float64 `bson:"energy" json:"energy" example:"2750"`
	Calcium    float64 `bson:"calcium" json:"calcium" example:"3.8"`
	Phosphorus float64 `bson:"phosphorus" json:"phosphorus" example:"0.45"`
}

// FeedFormula is a named feed recipe. Deleted formulas are kept with
// IsActive set to false.
type FeedFormula struct {
	ID              string       `bson:"_id" json:"id"`
	FarmID          string       `bson:"farm_id" json:"farmId"`
	Name            string       `bson:"name" json:"name" example:"Layer grower"`
	Ingredients     []Ingredient `bson:"ingredients" json:"ingredients"`
	TargetNutrition Nutrition    `bson:"target_nutrition" json:"targetNutrition"`
	TargetGroup     string       `bson:"target_group" json:"targetGroup" example:"layers"`
	TotalCost       float64      `bson:"total_cost" json:"totalCost" example:"17.5"`
	Notes           string       `bson:"notes,omitempty" json:"notes,omitempty"`
	IsActive        bool         `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updated_at" json:"updatedAt"`
}

// TotalCost sums quantity times unit cost across ingredients, rounded to cents.
func TotalCost(ingredients []Ingredient) float64 {
	total := decimal.Zero
	for _, in := range ingredients {
		total = total.Add(decimal.NewFromFloat(in.Quantity).Mul(decimal.NewFromFloat(in.Cost)))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// ValidUnit reports whether u is a known ingredient unit.
func ValidUnit(u string) bool {
	return u == UnitKilogram || u == UnitGram || u == UnitPercent
}

// ValidTargetGroup reports whether g is a known target group.
func ValidTargetGroup(g string) bool {
	switch g {
	case TargetChicks, TargetGrowers, TargetLayers, TargetBroilers:
		return true
	}
	return false
}
