package models

// Location is the structured address attached to a complaint. It is
// produced either by reverse-geocoding a device coordinate pair or by
// forward-geocoding manually entered address fields. Reverse results
// carry only the address fields; Lat/Lng and FullAddress are filled by
// a forward lookup.
type Location struct {
	Lat         float64 `json:"lat" gorm:"column:lat"`
	Lng         float64 `json:"lng" gorm:"column:lng"`
	HouseNo     string  `json:"houseNo,omitempty" gorm:"column:house_no;size:32"`
	Street      string  `json:"street" gorm:"column:street;size:255"`
	Landmark    string  `json:"landmark,omitempty" gorm:"column:landmark;size:255"`
	City        string  `json:"city" gorm:"column:city;size:128;index"`
	Pincode     string  `json:"pincode" gorm:"column:pincode;size:16;index"`
	FullAddress string  `json:"fullAddress" gorm:"column:full_address;type:text"`
}
