package model

import "time"

// Farm is the tenant every flock resource is scoped to.
type Farm struct {
	ID        string    `bson:"_id" json:"id" example:"7f1c2a4e-8d1b-4a8e-9a55-0c4f1f0b9e21"`
	Name      string    `bson:"name" json:"name" example:"Green Valley"`
	Location  string    `bson:"location" json:"location" example:"Kumasi"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
