package domain

// Genre classifies movies. Flat, name-keyed, unique by name.
type Genre struct {
	Record
	Name string `json:"name"`
}

// Language is a catalog browsing dimension as well as a user preference.
type Language struct {
	Record
	Name string `json:"name"`
}
