package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemKind distinguishes the two report pools.
type ItemKind string

const (
	ItemKindLost  ItemKind = "lost"
	ItemKindFound ItemKind = "found"
)

// Category is the fixed set of item categories a report may use.
type Category string

const (
	CategoryElectronics    Category = "electronics"
	CategoryClothing       Category = "clothing"
	CategoryHomeAppliances Category = "home-appliances"
	CategoryBooks          Category = "books"
	CategoryAutomotive     Category = "automotive"
	CategoryPets           Category = "pets"
	CategoryOther          Category = "other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryHomeAppliances,
	CategoryBooks,
	CategoryAutomotive,
	CategoryPets,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location is a geographic coordinate pair in decimal degrees.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Item is a single lost or found report. The same document shape is stored in
// both the lost and the found collections.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Category    Category           `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Location    *Location          `bson:"location" json:"location"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Matchable reports whether the record carries everything the ranking engine
// needs. Incomplete records are skipped during matching, never rejected.
func (i *Item) Matchable() bool {
	return i.Description != "" && i.Location != nil
}
