package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// SeedComplaints inserts the starter complaint set when the store is
// empty, so dashboards and the chatbot have data on a fresh session.
func SeedComplaints(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Complaint{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	seed := []models.Complaint{
		{
			ComplaintID: "CMPT-001",
			Seq:         1,
			Title:       "Large Pothole on Main St",
			Description: "A very deep pothole near the intersection of Main St and 1st Ave. It has damaged my tire.",
			Photo:       "https://picsum.photos/seed/pothole/400/300",
			Location: models.Location{
				Lat: 40.7128, Lng: -74.0060,
				HouseNo: "123", Street: "Main St", Landmark: "Near Times Square",
				City: "New York", Pincode: "10001",
				FullAddress: "123 Main St, New York, NY, 10001",
			},
			Status:        models.StatusPending,
			SubmittedAt:   now.Add(-2 * 24 * time.Hour),
			Type:          models.TypePothole,
			Impact:        models.ImpactAccidentRisk,
			AffectedCount: 12,
		},
		{
			ComplaintID: "CMPT-002",
			Seq:         2,
			Title:       "Garbage overflowing at City Park",
			Description: "The trash cans at the main entrance of City Park have not been emptied for days.",
			Photo:       "https://picsum.photos/seed/garbage/400/300",
			Location: models.Location{
				Lat: 40.7150, Lng: -74.0082,
				HouseNo: "25", Street: "City Park Ave",
				City: "New York", Pincode: "10002",
				FullAddress: "25 City Park Ave, New York, NY, 10002",
			},
			Status:        models.StatusInProgress,
			SubmittedAt:   now.Add(-1 * 24 * time.Hour),
			Type:          models.TypeGarbage,
			Impact:        models.ImpactHealthHazard,
			AffectedCount: 5,
		},
		{
			ComplaintID: "CMPT-003",
			Seq:         3,
			Title:       "Streetlight out on Oak Avenue",
			Description: "The streetlight at the corner of Oak and Maple is completely out. It is very dark at night.",
			Photo:       "https://picsum.photos/seed/streetlight/400/300",
			Location: models.Location{
				Lat: 40.7100, Lng: -74.0050,
				HouseNo: "45", Street: "Oak Avenue",
				City: "New York", Pincode: "10003",
				FullAddress: "45 Oak Avenue, New York, NY, 10003",
			},
			Status:          models.StatusResolved,
			SubmittedAt:     now.Add(-5 * 24 * time.Hour),
			ResolutionNotes: "Replaced bulb and repaired faulty wiring on 2024-07-19.",
			Type:            models.TypeStreetlight,
			Impact:          models.ImpactSafetyConcern,
			AffectedCount:   8,
		},
	}

	return db.Create(&seed).Error
}
