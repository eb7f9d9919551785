package domain

// LocationKind discriminates the resolved form of a user's location preference.
type LocationKind int

const (
	// LocationNone means no usable preference is stored; proximity
	// filtering is skipped entirely.
	LocationNone LocationKind = iota
	// LocationCity means a bare city name, matched by substring.
	LocationCity
	// LocationPoint means a geocoded address with usable coordinates.
	LocationPoint
)

func (k LocationKind) String() string {
	switch k {
	case LocationCity:
		return "city"
	case LocationPoint:
		return "point"
	default:
		return "none"
	}
}

// MarshalJSON emits the kind as its string name so API clients never see
// the internal enum ordering.
func (k LocationKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// ResolvedLocation is the normalized form of the user's stored location
// preference. Exactly one variant applies, per Kind.
type ResolvedLocation struct {
	Kind    LocationKind `json:"kind"`
	City    string       `json:"city,omitempty"`
	Address string       `json:"address,omitempty"`
	Point   GeoPoint     `json:"point,omitempty"`
}

// StoredAddress is the JSON shape persisted under the selected_address
// preference key. Lat/Lon are strings because the geocoding API returns
// them as strings; they are validated at resolution time.
type StoredAddress struct {
	Address string `json:"address"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

// GeocodeResult is a candidate match from the geocoding API.
// Coordinates stay string-typed at this boundary, matching the wire format.
type GeocodeResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
