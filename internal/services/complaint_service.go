package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/muskanVaswani/sudharsetu-backend/internal/metrics"
	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// ErrComplaintNotFound is returned when a complaint id does not exist.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintService defines the business operations over the complaint
// record store.
type ComplaintService interface {
	// Create inserts a new complaint. Identifier, status, timestamp and
	// affected count are assigned here; field validation is the caller's
	// responsibility.
	Create(ctx context.Context, req *models.ComplaintRequest) (*models.Complaint, error)
	// UpdateStatus replaces the status of a complaint and, when notes is
	// non-empty, its resolution notes. Prior notes are retained otherwise.
	UpdateStatus(ctx context.Context, id string, status models.Status, notes string) (*models.Complaint, error)
	// IncrementAffected bumps the affected-citizen count by one.
	IncrementAffected(ctx context.Context, id string) (*models.Complaint, error)
	// List returns complaints newest-first, optionally filtered by status.
	// An empty filter or models.StatusAll returns the full set.
	List(ctx context.Context, status models.Status) ([]models.Complaint, error)
	// StatusCounts returns per-status counts over the full set.
	StatusCounts(ctx context.Context) (map[models.Status]int64, error)
	// FindNearby returns up to limit complaints sharing both city and
	// pincode, newest-first.
	FindNearby(ctx context.Context, city, pincode string, limit int) ([]models.Complaint, error)
}

// complaintService is the concrete implementation of ComplaintService.
// It holds the GORM instance and the id sequence. The sequence mutex
// exists because creation can arrive from concurrent requests.
type complaintService struct {
	db       *gorm.DB
	notifier NotificationService

	mu      sync.Mutex
	lastSeq int
}

// NewComplaintService injects the *gorm.DB dependency and initializes
// the id sequence from the highest existing record.
func NewComplaintService(db *gorm.DB, notifier NotificationService) (ComplaintService, error) {
	var lastSeq int
	err := db.Model(&models.Complaint{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&lastSeq).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read complaint sequence: %w", err)
	}

	return &complaintService{db: db, notifier: notifier, lastSeq: lastSeq}, nil
}

func (s *complaintService) nextSeq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq++
	return s.lastSeq
}

func (s *complaintService) Create(ctx context.Context, req *models.ComplaintRequest) (*models.Complaint, error) {
	seq := s.nextSeq()
	c := &models.Complaint{
		ComplaintID:   fmt.Sprintf("CMPT-%03d", seq),
		Seq:           seq,
		Title:         req.Title,
		Description:   req.Description,
		Photo:         req.Photo,
		Location:      req.Location,
		Status:        models.StatusPending,
		SubmittedAt:   time.Now(),
		Type:          req.Type,
		Impact:        req.Impact,
		AffectedCount: 1, // starts with the original reporter
	}

	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}

	metrics.ComplaintsCreatedTotal.Inc()
	return c, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, id string, status models.Status, notes string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.WithContext(ctx).First(&c, "complaint_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	c.Status = status
	if notes != "" {
		updates["resolution_notes"] = notes
		c.ResolutionNotes = notes
	}

	if err := s.db.WithContext(ctx).Model(&c).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Push(
			fmt.Sprintf("Status for complaint %s updated to %s.", id, status),
			models.SeverityInfo,
		)
	}

	metrics.StatusUpdatesTotal.Inc()
	return &c, nil
}

func (s *complaintService) IncrementAffected(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.WithContext(ctx).First(&c, "complaint_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}

	c.AffectedCount++
	if err := s.db.WithContext(ctx).Model(&c).Update("affected_count", c.AffectedCount).Error; err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *complaintService) List(ctx context.Context, status models.Status) ([]models.Complaint, error) {
	q := s.db.WithContext(ctx).Order("seq DESC")
	if status != "" && status != models.StatusAll {
		q = q.Where("status = ?", status)
	}

	var complaints []models.Complaint
	if err := q.Find(&complaints).Error; err != nil {
		return nil, err
	}

	return complaints, nil
}

func (s *complaintService) StatusCounts(ctx context.Context) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.Status]int64{
		models.StatusPending:    0,
		models.StatusInProgress: 0,
		models.StatusResolved:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (s *complaintService) FindNearby(ctx context.Context, city, pincode string, limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.WithContext(ctx).
		Where("loc_city = ? AND loc_pincode = ?", city, pincode).
		Order("seq DESC").
		Limit(limit).
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}

	return complaints, nil
}
