package extract

// Record is one decoded boat ramp marker, in source coordinate order.
type Record struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	Slug      string
	URL       string
}
