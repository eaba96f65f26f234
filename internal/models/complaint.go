package models

import "time"

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"

	// StatusAll is a filter-only value accepted by list endpoints.
	// It is never stored on a complaint.
	StatusAll Status = "All"
)

// ValidStatus reports whether s is a storable complaint status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ComplaintType is the closed set of issue categories offered on the
// reporting form.
type ComplaintType string

const (
	TypePothole               ComplaintType = "Pothole"
	TypeGarbage               ComplaintType = "Garbage Overflow"
	TypeStreetlight           ComplaintType = "Broken Streetlight"
	TypeWaterLogging          ComplaintType = "Water Logging"
	TypeBrokenSidewalk        ComplaintType = "Broken Sidewalk"
	TypeDamagedPublicProperty ComplaintType = "Damaged Public Property"
	TypeIllegalParking        ComplaintType = "Illegal Parking"
	TypeStrayAnimal           ComplaintType = "Stray Animal Nuisance"
	TypeTrafficSignal         ComplaintType = "Traffic Signal Malfunction"
	TypeGraffiti              ComplaintType = "Graffiti"
	TypeOther                 ComplaintType = "Other"
)

// Impact categorises who or what the issue puts at risk.
type Impact string

const (
	ImpactAccidentRisk        Impact = "Accident Risk"
	ImpactHealthHazard        Impact = "Health Hazard"
	ImpactSafetyConcern       Impact = "Safety Concern (e.g., Women Safety)"
	ImpactAnimalWelfare       Impact = "Animal Lives At Risk"
	ImpactPropertyDamage      Impact = "Property Damage Risk"
	ImpactEnvironmentalHazard Impact = "Environmental Hazard"
	ImpactAccessibilityIssue  Impact = "Accessibility Issue"
	ImpactPublicNuisance      Impact = "Public Nuisance"
)

// Complaint represents a single reported civic issue and its lifecycle
// state. The public identifier is "CMPT-" plus a zero-padded sequence
// number, assigned once at creation and never changed. Seq mirrors that
// sequence as an integer so listings can order newest-first without
// parsing the identifier.
type Complaint struct {
	ComplaintID     string        `json:"id" gorm:"primaryKey;column:complaint_id;size:16"`
	Seq             int           `json:"-" gorm:"column:seq;uniqueIndex;not null"`
	Title           string        `json:"title" gorm:"size:255;not null"`
	Description     string        `json:"description" gorm:"type:text;not null"`
	Photo           string        `json:"photo" gorm:"type:text"`
	Location        Location      `json:"location" gorm:"embedded;embeddedPrefix:loc_"`
	Status          Status        `json:"status" gorm:"size:32;not null;index"`
	SubmittedAt     time.Time     `json:"submittedAt" gorm:"not null"`
	ResolutionNotes string        `json:"resolutionNotes,omitempty" gorm:"type:text"`
	Type            ComplaintType `json:"type" gorm:"size:64;not null"`
	Impact          Impact        `json:"impact" gorm:"size:64;not null"`
	AffectedCount   int           `json:"affectedCount" gorm:"not null;default:1"`
	CreatedAt       time.Time     `json:"-" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"-" gorm:"autoUpdateTime"`
}
