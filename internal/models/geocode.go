package models

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address,omitempty"`
	Geometry         struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

type GeocodeResponse struct {
	Status       string          `json:"status"`
	Results      []GeocodeResult `json:"results"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
