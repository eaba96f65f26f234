package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// fakeGeocoder returns canned results so workflow tests need no network.
type fakeGeocoder struct {
	forwardResult *models.Location
	reverseResult *models.Location
}

func (f *fakeGeocoder) Forward(_ context.Context, _ models.Location) *models.Location {
	if f.forwardResult == nil {
		return nil
	}
	loc := *f.forwardResult
	return &loc
}

func (f *fakeGeocoder) Reverse(_ context.Context, _, _ float64) *models.Location {
	if f.reverseResult == nil {
		return nil
	}
	loc := *f.reverseResult
	return &loc
}

// fakeVerifier resolves every photo check with a fixed verdict.
type fakeVerifier struct {
	verdict bool
}

func (f *fakeVerifier) AnswerQuery(_ context.Context, _ string, _ []models.Complaint) string {
	return "ok"
}

func (f *fakeVerifier) VerifyImage(_ context.Context, _ []byte, _ string, _ models.ComplaintType) bool {
	return f.verdict
}

var testPhoto = base64.StdEncoding.EncodeToString([]byte("not really a jpeg"))

func geocodedNYC() *models.Location {
	return &models.Location{
		Lat: 40.7128, Lng: -74.0060,
		Street: "Main St", City: "New York", Pincode: "10001",
		FullAddress: "Main St, New York, NY, 10001",
	}
}

func newTestSubmissionService(t *testing.T, geocoder GeocodeService, verifier AssistantService) (SubmissionService, ComplaintService, NotificationService) {
	t.Helper()
	complaints, notifier := newTestComplaintService(t)
	svc := NewSubmissionService(complaints, geocoder, verifier, notifier)
	return svc, complaints, notifier
}

// waitForVerification polls until the async photo check resolves.
func waitForVerification(t *testing.T, svc SubmissionService, id string) VerificationState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sub, err := svc.Get(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if sub.Verification != VerificationPending {
			return sub.Verification
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("photo verification did not resolve in time")
	return VerificationNone
}

// advanceToDetailing walks a fresh session through locating and
// reviewing.
func advanceToDetailing(t *testing.T, svc SubmissionService) *Submission {
	t.Helper()
	sub := svc.Start()
	sub, err := svc.SetManualLocation(context.Background(), sub.ID, models.ManualLocationRequest{
		Street: "Main St", City: "New York", Pincode: "10001",
	})
	if err != nil {
		t.Fatalf("locating failed: %v", err)
	}
	sub, err = svc.Proceed(sub.ID)
	if err != nil {
		t.Fatalf("proceed failed: %v", err)
	}
	return sub
}

func TestStart_BeginsAtLocating(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{}, &fakeVerifier{verdict: true})

	sub := svc.Start()
	if sub.State != StateLocating {
		t.Errorf("initial state: got %s, want %s", sub.State, StateLocating)
	}
	if sub.ID == "" {
		t.Error("expected a session id")
	}
	if sub.Verification != VerificationNone {
		t.Errorf("initial verification: got %s", sub.Verification)
	}
}

func TestSetManualLocation_MissingFields(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})

	sub := svc.Start()
	_, err := svc.SetManualLocation(context.Background(), sub.ID, models.ManualLocationRequest{
		Street: "Main St", // city and pincode missing
	})
	if !errors.Is(err, ErrMissingAddressFields) {
		t.Fatalf("expected ErrMissingAddressFields, got: %v", err)
	}

	got, err := svc.Get(sub.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.State != StateLocating {
		t.Errorf("state after validation failure: got %s, want %s", got.State, StateLocating)
	}
}

func TestSetManualLocation_GeocodeFailureKeepsState(t *testing.T) {
	// forward lookup fails (simulated network error inside the adapter)
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{}, &fakeVerifier{verdict: true})

	sub := svc.Start()
	_, err := svc.SetManualLocation(context.Background(), sub.ID, models.ManualLocationRequest{
		Street: "Main St", City: "New York", Pincode: "10001",
	})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got: %v", err)
	}

	got, err := svc.Get(sub.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.State != StateLocating {
		t.Errorf("state: got %s, want %s", got.State, StateLocating)
	}
	if got.Location != nil {
		t.Errorf("no location object may exist after a failed lookup, got %+v", got.Location)
	}
	// typed fields must survive the failure
	if got.Manual.Street != "Main St" {
		t.Errorf("entered street lost: got %q", got.Manual.Street)
	}
}

func TestSetManualLocation_ComputesDuplicates(t *testing.T) {
	svc, complaints, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})
	ctx := context.Background()

	// CMPT-001 shares city and pincode with the geocoded location
	if _, err := complaints.Create(ctx, testRequest("Large Pothole on Main St")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := testRequest("other pincode")
	other.Location.Pincode = "99999"
	if _, err := complaints.Create(ctx, other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sub := svc.Start()
	sub, err := svc.SetManualLocation(ctx, sub.ID, models.ManualLocationRequest{
		Street: "Main St", City: "New York", Pincode: "10001",
	})
	if err != nil {
		t.Fatalf("locating failed: %v", err)
	}

	if sub.State != StateReviewing {
		t.Errorf("state: got %s, want %s", sub.State, StateReviewing)
	}
	if len(sub.Duplicates) != 1 || sub.Duplicates[0].ComplaintID != "CMPT-001" {
		t.Errorf("duplicate candidates wrong: %+v", sub.Duplicates)
	}
}

func TestSetManualLocation_CapsDuplicatesAtThree(t *testing.T) {
	svc, complaints, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := complaints.Create(ctx, testRequest(fmt.Sprintf("complaint %d", i))); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	sub := svc.Start()
	sub, err := svc.SetManualLocation(ctx, sub.ID, models.ManualLocationRequest{
		Street: "Main St", City: "New York", Pincode: "10001",
	})
	if err != nil {
		t.Fatalf("locating failed: %v", err)
	}
	if len(sub.Duplicates) != 3 {
		t.Errorf("duplicate candidates: got %d, want 3", len(sub.Duplicates))
	}
}

func TestSetDeviceLocation_FillsEditableFields(t *testing.T) {
	reverse := &models.Location{Street: "Oak Avenue", City: "New York", Pincode: "10003", HouseNo: "45"}
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{reverseResult: reverse}, &fakeVerifier{verdict: true})

	sub := svc.Start()
	sub, err := svc.SetDeviceLocation(context.Background(), sub.ID, 40.71, -74.0)
	if err != nil {
		t.Fatalf("device location failed: %v", err)
	}

	// reverse lookup only pre-fills the form; the user still confirms
	if sub.State != StateLocating {
		t.Errorf("state: got %s, want %s", sub.State, StateLocating)
	}
	if sub.Manual.Street != "Oak Avenue" || sub.Manual.Pincode != "10003" {
		t.Errorf("manual fields not filled: %+v", sub.Manual)
	}
	if sub.Location != nil {
		t.Error("reverse lookup must not set the confirmed location")
	}
}

func TestBack_ReturnsWithoutDiscardingData(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})

	sub := advanceToDetailing(t, svc)
	if _, err := svc.SetDetails(sub.ID, models.SubmissionDetailsRequest{
		Title: "Broken bench", Description: "Bench is broken",
		Type: models.TypeDamagedPublicProperty, Impact: models.ImpactPublicNuisance,
	}); err != nil {
		t.Fatalf("details failed: %v", err)
	}

	sub, err := svc.Back(sub.ID)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if sub.State != StateReviewing {
		t.Errorf("state after back: got %s, want %s", sub.State, StateReviewing)
	}
	if sub.Title != "Broken bench" {
		t.Error("entered details lost on back")
	}

	sub, err = svc.Back(sub.ID)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if sub.State != StateLocating {
		t.Errorf("state after second back: got %s, want %s", sub.State, StateLocating)
	}
	if sub.Location == nil {
		t.Error("confirmed location lost on back")
	}

	if _, err := svc.Back(sub.ID); !errors.Is(err, ErrWrongState) {
		t.Errorf("expected ErrWrongState at the first step, got: %v", err)
	}
}

func TestAffectsMe_OneShotPerSession(t *testing.T) {
	svc, complaints, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})
	ctx := context.Background()

	if _, err := complaints.Create(ctx, testRequest("Large Pothole on Main St")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sub := svc.Start()
	if _, err := svc.SetManualLocation(ctx, sub.ID, models.ManualLocationRequest{
		Street: "Main St", City: "New York", Pincode: "10001",
	}); err != nil {
		t.Fatalf("locating failed: %v", err)
	}

	if _, err := svc.AffectsMe(ctx, sub.ID, "CMPT-001"); err != nil {
		t.Fatalf("affects-me failed: %v", err)
	}
	c, err := complaints.IncrementAffected(ctx, "CMPT-001")
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	// 1 initial + 1 affects-me + 1 direct increment above
	if c.AffectedCount != 3 {
		t.Errorf("affected count: got %d, want 3", c.AffectedCount)
	}

	if _, err := svc.AffectsMe(ctx, sub.ID, "CMPT-001"); !errors.Is(err, ErrAlreadyAcknowledged) {
		t.Errorf("expected ErrAlreadyAcknowledged on second click, got: %v", err)
	}
}

func TestAttachPhoto_RequiresSelectedType(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})

	sub := advanceToDetailing(t, svc)
	if _, err := svc.AttachPhoto(sub.ID, testPhoto, "image/jpeg"); !errors.Is(err, ErrTypeNotSelected) {
		t.Errorf("expected ErrTypeNotSelected, got: %v", err)
	}
}

func TestSubmit_FullFlow(t *testing.T) {
	svc, complaints, notifier := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})
	ctx := context.Background()

	sub := advanceToDetailing(t, svc)
	if _, err := svc.SetDetails(sub.ID, models.SubmissionDetailsRequest{
		Title: "Broken bench", Description: "The bench near the fountain is broken",
		Type: models.TypeDamagedPublicProperty, Impact: models.ImpactPublicNuisance,
	}); err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if _, err := svc.AttachPhoto(sub.ID, testPhoto, "image/jpeg"); err != nil {
		t.Fatalf("photo failed: %v", err)
	}
	if state := waitForVerification(t, svc, sub.ID); state != VerificationApproved {
		t.Fatalf("verification: got %s, want %s", state, VerificationApproved)
	}

	complaint, err := svc.Submit(ctx, sub.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if complaint.ComplaintID != "CMPT-001" {
		t.Errorf("complaint id: got %s", complaint.ComplaintID)
	}
	if complaint.Status != models.StatusPending {
		t.Errorf("status: got %s, want %s", complaint.Status, models.StatusPending)
	}
	if complaint.Location.City != "New York" {
		t.Errorf("location not carried over: %+v", complaint.Location)
	}

	// session is torn down after a successful create
	if _, err := svc.Get(sub.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("expected session teardown, got: %v", err)
	}

	all, err := complaints.List(ctx, models.StatusAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 stored complaint, got %d", len(all))
	}

	found := false
	for _, n := range notifier.Active() {
		if n.Severity == models.SeveritySuccess {
			found = true
		}
	}
	if !found {
		t.Error("expected a success notification after submit")
	}
}

func TestSubmit_BlockedUntilVerificationResolves(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: true})

	sub := advanceToDetailing(t, svc)
	if _, err := svc.SetDetails(sub.ID, models.SubmissionDetailsRequest{
		Title: "Broken bench", Description: "desc",
		Type: models.TypeDamagedPublicProperty, Impact: models.ImpactPublicNuisance,
	}); err != nil {
		t.Fatalf("details failed: %v", err)
	}

	// no photo attached yet
	if _, err := svc.Submit(context.Background(), sub.ID); !errors.Is(err, ErrDetailsIncomplete) {
		t.Errorf("expected ErrDetailsIncomplete without a photo, got: %v", err)
	}

	if _, err := svc.AttachPhoto(sub.ID, testPhoto, "image/jpeg"); err != nil {
		t.Fatalf("photo failed: %v", err)
	}
	waitForVerification(t, svc, sub.ID)

	if _, err := svc.Submit(context.Background(), sub.ID); err != nil {
		t.Errorf("submit after approval failed: %v", err)
	}
}

func TestSubmit_RejectedPhotoBlocks(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{forwardResult: geocodedNYC()}, &fakeVerifier{verdict: false})

	sub := advanceToDetailing(t, svc)
	if _, err := svc.SetDetails(sub.ID, models.SubmissionDetailsRequest{
		Title: "Broken bench", Description: "desc",
		Type: models.TypeDamagedPublicProperty, Impact: models.ImpactPublicNuisance,
	}); err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if _, err := svc.AttachPhoto(sub.ID, testPhoto, "image/jpeg"); err != nil {
		t.Fatalf("photo failed: %v", err)
	}
	if state := waitForVerification(t, svc, sub.ID); state != VerificationRejected {
		t.Fatalf("verification: got %s, want %s", state, VerificationRejected)
	}

	if _, err := svc.Submit(context.Background(), sub.ID); !errors.Is(err, ErrPhotoNotVerified) {
		t.Errorf("expected ErrPhotoNotVerified, got: %v", err)
	}
}

func TestAbandon_RemovesSession(t *testing.T) {
	svc, _, _ := newTestSubmissionService(t, &fakeGeocoder{}, &fakeVerifier{verdict: true})

	sub := svc.Start()
	svc.Abandon(sub.ID)
	if _, err := svc.Get(sub.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("expected ErrSubmissionNotFound after abandon, got: %v", err)
	}
}
