package dto

// LocationPayload mirrors the coordinate pair sent by the web client.
type LocationPayload struct {
	Lat *float64 `json:"lat" validate:"required,latitude_deg"`
	Lng *float64 `json:"lng" validate:"required,longitude_deg"`
}

// CreateItemRequest is the body of both the lost and the found report
// endpoints.
type CreateItemRequest struct {
	Category    string           `json:"category" validate:"required,item_category"`
	Description string           `json:"description" validate:"required,min=3,max=2000"`
	Location    *LocationPayload `json:"location" validate:"required"`
	ImageURL    string           `json:"imageUrl" validate:"omitempty,url"`
}

// NearbyQuery filters the combined report pools around a point.
type NearbyQuery struct {
	Latitude  *float64 `form:"latitude" validate:"required,latitude_deg"`
	Longitude *float64 `form:"longitude" validate:"required,longitude_deg"`
	RadiusKm  float64  `form:"radius" validate:"omitempty,min=0"`
}
