package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// SubmissionState is the step a guided submission is on. The flow is
// linear (locating -> reviewing -> detailing); the only back-edge is an
// explicit user "go back", which never discards entered data.
type SubmissionState string

const (
	StateLocating  SubmissionState = "locating"
	StateReviewing SubmissionState = "reviewing"
	StateDetailing SubmissionState = "detailing"
)

// VerificationState tracks the asynchronous photo check.
type VerificationState string

const (
	VerificationNone     VerificationState = "none"
	VerificationPending  VerificationState = "pending"
	VerificationApproved VerificationState = "approved"
	VerificationRejected VerificationState = "rejected"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrWrongState           = errors.New("action not available in the current step")
	ErrMissingAddressFields = errors.New("street, city and pincode are required")
	ErrAddressNotFound      = errors.New("address not found")
	ErrTypeNotSelected      = errors.New("select an issue type before attaching a photo")
	ErrAlreadyAcknowledged  = errors.New("already marked as affected for this complaint")
	ErrDetailsIncomplete    = errors.New("title, description, type, impact and photo are all required")
	ErrVerificationPending  = errors.New("photo verification is still running")
	ErrPhotoNotVerified     = errors.New("photo did not pass verification")
)

// sessionTTL bounds how long an abandoned submission is kept around.
const sessionTTL = time.Hour

// Submission is the accumulated state of one guided report. Copies
// handed out by the service are snapshots; mutate only through the
// service methods.
type Submission struct {
	ID           string               `json:"id"`
	State        SubmissionState      `json:"state"`
	Manual       models.Location      `json:"manual"`
	Location     *models.Location     `json:"location,omitempty"`
	Duplicates   []models.Complaint   `json:"duplicates"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Type         models.ComplaintType `json:"type"`
	Impact       models.Impact        `json:"impact"`
	Photo        string               `json:"-"`
	PhotoMime    string               `json:"-"`
	Verification VerificationState    `json:"verification"`
	CreatedAt    time.Time            `json:"createdAt"`

	// one-shot guard for "affects me too", per session per complaint
	acknowledged map[string]bool
	// photoGen invalidates in-flight verifications when a new photo or
	// issue type arrives before the previous check resolved
	photoGen int
}

// SubmissionService drives the three-stage guided reporting flow,
// composing the geocoding adapter, the AI adapter and the record store.
type SubmissionService interface {
	Start() *Submission
	Get(id string) (*Submission, error)
	// SetManualLocation forward-geocodes the entered address. On success
	// the session advances to reviewing with its duplicate candidates
	// computed; on failure the state is unchanged and no location is set.
	SetManualLocation(ctx context.Context, id string, req models.ManualLocationRequest) (*Submission, error)
	// SetDeviceLocation reverse-geocodes a device coordinate pair and
	// re-presents the result as editable manual fields. It never
	// advances the state on its own.
	SetDeviceLocation(ctx context.Context, id string, lat, lng float64) (*Submission, error)
	Back(id string) (*Submission, error)
	Proceed(id string) (*Submission, error)
	// AffectsMe bumps the affected count of a duplicate candidate, once
	// per session per complaint.
	AffectsMe(ctx context.Context, id, complaintID string) (*Submission, error)
	SetDetails(id string, req models.SubmissionDetailsRequest) (*Submission, error)
	// AttachPhoto stores the photo and starts the asynchronous
	// verification against the currently selected issue type.
	AttachPhoto(id string, photo, mimeType string) (*Submission, error)
	// Submit creates the complaint record once every field is present
	// and the photo verification has approved, then tears the session
	// down.
	Submit(ctx context.Context, id string) (*models.Complaint, error)
	Abandon(id string)
}

type submissionService struct {
	complaints ComplaintService
	geocoder   GeocodeService
	assistant  AssistantService
	notifier   NotificationService

	mu       sync.Mutex
	sessions map[string]*Submission
}

// NewSubmissionService wires the collaborating services together.
func NewSubmissionService(complaints ComplaintService, geocoder GeocodeService, assistant AssistantService, notifier NotificationService) SubmissionService {
	return &submissionService{
		complaints: complaints,
		geocoder:   geocoder,
		assistant:  assistant,
		notifier:   notifier,
		sessions:   make(map[string]*Submission),
	}
}

func (s *submissionService) Start() *Submission {
	sub := &Submission{
		ID:           uuid.New().String(),
		State:        StateLocating,
		Verification: VerificationNone,
		CreatedAt:    time.Now(),
		acknowledged: make(map[string]bool),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())
	s.sessions[sub.ID] = sub
	return snapshot(sub)
}

func (s *submissionService) Get(id string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return snapshot(sub), nil
}

func (s *submissionService) SetManualLocation(ctx context.Context, id string, req models.ManualLocationRequest) (*Submission, error) {
	s.mu.Lock()
	sub, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateLocating {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	// Keep whatever was typed so a failed lookup does not wipe the form.
	sub.Manual = models.Location{
		HouseNo:  req.HouseNo,
		Street:   req.Street,
		Landmark: req.Landmark,
		City:     req.City,
		Pincode:  req.Pincode,
	}
	partial := sub.Manual
	s.mu.Unlock()

	if strings.TrimSpace(req.Street) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Pincode) == "" {
		return nil, ErrMissingAddressFields
	}

	// Remote call happens outside the lock; a slow provider must not
	// block unrelated sessions.
	loc := s.geocoder.Forward(ctx, partial)
	if loc == nil {
		return nil, ErrAddressNotFound
	}

	duplicates, err := s.complaints.FindNearby(ctx, loc.City, loc.Pincode, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to look up nearby complaints: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok = s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	sub.Location = loc
	sub.Manual = *loc
	sub.Duplicates = duplicates
	sub.State = StateReviewing
	return snapshot(sub), nil
}

func (s *submissionService) SetDeviceLocation(ctx context.Context, id string, lat, lng float64) (*Submission, error) {
	s.mu.Lock()
	sub, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateLocating {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	s.mu.Unlock()

	loc := s.geocoder.Reverse(ctx, lat, lng)
	if loc == nil {
		return nil, ErrAddressNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok = s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	sub.Manual = *loc
	return snapshot(sub), nil
}

func (s *submissionService) Back(id string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}

	switch sub.State {
	case StateReviewing:
		sub.State = StateLocating
	case StateDetailing:
		sub.State = StateReviewing
	default:
		return nil, ErrWrongState
	}
	return snapshot(sub), nil
}

func (s *submissionService) Proceed(id string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateReviewing {
		return nil, ErrWrongState
	}
	sub.State = StateDetailing
	return snapshot(sub), nil
}

func (s *submissionService) AffectsMe(ctx context.Context, id, complaintID string) (*Submission, error) {
	s.mu.Lock()
	sub, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateReviewing {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	if sub.acknowledged[complaintID] {
		s.mu.Unlock()
		return nil, ErrAlreadyAcknowledged
	}
	sub.acknowledged[complaintID] = true
	s.mu.Unlock()

	if _, err := s.complaints.IncrementAffected(ctx, complaintID); err != nil {
		s.mu.Lock()
		delete(sub.acknowledged, complaintID)
		s.mu.Unlock()
		return nil, err
	}

	return s.Get(id)
}

func (s *submissionService) SetDetails(id string, req models.SubmissionDetailsRequest) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.sessions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateDetailing {
		return nil, ErrWrongState
	}

	// A changed issue type invalidates any verification done against
	// the old one.
	if sub.Type != req.Type && sub.Photo != "" {
		sub.Verification = VerificationNone
		sub.photoGen++
	}

	sub.Title = req.Title
	sub.Description = req.Description
	sub.Type = req.Type
	sub.Impact = req.Impact
	return snapshot(sub), nil
}

func (s *submissionService) AttachPhoto(id string, photo, mimeType string) (*Submission, error) {
	image, err := base64.StdEncoding.DecodeString(photo)
	if err != nil {
		return nil, fmt.Errorf("invalid photo payload: %w", err)
	}

	s.mu.Lock()
	sub, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateDetailing {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	if sub.Type == "" {
		s.mu.Unlock()
		return nil, ErrTypeNotSelected
	}

	sub.Photo = photo
	sub.PhotoMime = mimeType
	sub.Verification = VerificationPending
	sub.photoGen++
	gen := sub.photoGen
	claimedType := sub.Type
	out := snapshot(sub)
	s.mu.Unlock()

	go func() {
		ok := s.assistant.VerifyImage(context.Background(), image, mimeType, claimedType)

		s.mu.Lock()
		defer s.mu.Unlock()
		sub, exists := s.sessions[id]
		if !exists || sub.photoGen != gen {
			// photo replaced or session gone while we were verifying
			return
		}
		if ok {
			sub.Verification = VerificationApproved
		} else {
			sub.Verification = VerificationRejected
		}
	}()

	return out, nil
}

func (s *submissionService) Submit(ctx context.Context, id string) (*models.Complaint, error) {
	s.mu.Lock()
	sub, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSubmissionNotFound
	}
	if sub.State != StateDetailing {
		s.mu.Unlock()
		return nil, ErrWrongState
	}
	if sub.Location == nil || sub.Title == "" || sub.Description == "" ||
		sub.Type == "" || sub.Impact == "" || sub.Photo == "" {
		s.mu.Unlock()
		return nil, ErrDetailsIncomplete
	}
	switch sub.Verification {
	case VerificationApproved:
	case VerificationPending:
		s.mu.Unlock()
		return nil, ErrVerificationPending
	default:
		s.mu.Unlock()
		return nil, ErrPhotoNotVerified
	}

	req := &models.ComplaintRequest{
		Title:       sub.Title,
		Description: sub.Description,
		Photo:       sub.Photo,
		Location:    *sub.Location,
		Type:        sub.Type,
		Impact:      sub.Impact,
	}
	s.mu.Unlock()

	complaint, err := s.complaints.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Push(
			fmt.Sprintf("Complaint %s submitted successfully.", complaint.ComplaintID),
			models.SeveritySuccess,
		)
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return complaint, nil
}

func (s *submissionService) Abandon(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// pruneLocked drops sessions past their TTL. Caller must hold s.mu.
func (s *submissionService) pruneLocked(now time.Time) {
	for id, sub := range s.sessions {
		if now.Sub(sub.CreatedAt) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}

// snapshot clones a session so callers never share the live struct.
func snapshot(sub *Submission) *Submission {
	out := *sub
	out.acknowledged = nil
	if sub.Duplicates != nil {
		out.Duplicates = make([]models.Complaint, len(sub.Duplicates))
		copy(out.Duplicates, sub.Duplicates)
	}
	if sub.Location != nil {
		loc := *sub.Location
		out.Location = &loc
	}
	return &out
}
