package models

// JSON from the front-end.

// ComplaintRequest carries the fields a citizen provides when filing a
// complaint directly. Identifier, status, timestamp and affected count
// are assigned by the service.
type ComplaintRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Photo       string        `json:"photo"`
	Location    Location      `json:"location"`
	Type        ComplaintType `json:"type"`
	Impact      Impact        `json:"impact"`
}

// StatusUpdateRequest is the admin payload for changing a complaint's
// status. An empty Notes keeps whatever resolution notes were already
// on the record.
type StatusUpdateRequest struct {
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}
