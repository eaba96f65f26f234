package models

// JSON from the front-end for the guided submission flow.

// ManualLocationRequest carries the editable address fields of the
// locating step. Street, city and pincode are mandatory inputs to
// forward geocoding.
type ManualLocationRequest struct {
	HouseNo  string `json:"houseNo"`
	Street   string `json:"street"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// DeviceLocationRequest carries a device-reported coordinate pair.
type DeviceLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SubmissionDetailsRequest carries the detailing-step fields.
type SubmissionDetailsRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ComplaintType `json:"type"`
	Impact      Impact        `json:"impact"`
}

// PhotoRequest carries a base64-encoded photo and its MIME type.
type PhotoRequest struct {
	Photo    string `json:"photo"`
	MimeType string `json:"mimeType"`
}
