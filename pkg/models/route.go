package models

// RouteEstimateRequest asks for travel-time estimates from the user's
// location to a named accommodation.
type RouteEstimateRequest struct {
	UserLocation [2]float64 `json:"user_location" binding:"required"` // [lat, lon]
	HotelName    string     `json:"hotel_name" binding:"required,min=1"`
}

// ProviderUnavailable is the literal returned for a travel-time leg whose
// routing provider failed or timed out.
const ProviderUnavailable = "unavailable"

// RouteEstimateResponse carries the resolved accommodation and its two
// independently sourced travel-time legs. Either leg may be
// ProviderUnavailable without failing the request.
type RouteEstimateResponse struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TransitTime string  `json:"transit_time"`
	CarTime     string  `json:"car_time"`
}
