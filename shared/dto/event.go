package dto

// CatalogEvent is the payload published to the catalog events topic
// whenever an admin mutates a package or itinerary. Consumers use it to
// refresh destination snapshots without polling the database.
type CatalogEvent struct {
	Entity      string `json:"entity"`
	Action      string `json:"action"`
	ID          string `json:"id"`
	Destination string `json:"destination"`
}
