package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// fakeGenerator satisfies contentGenerator without a network.
type fakeGenerator struct {
	textReply  string
	imageReply string
	err        error

	lastSystem string
	lastText   string
	lastPrompt string
}

func (f *fakeGenerator) GenerateText(_ context.Context, systemInstruction, contents string) (string, error) {
	f.lastSystem = systemInstruction
	f.lastText = contents
	return f.textReply, f.err
}

func (f *fakeGenerator) GenerateWithImage(_ context.Context, _ []byte, _, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.imageReply, f.err
}

func TestAnswerQuery_ReturnsGeneratedText(t *testing.T) {
	gen := &fakeGenerator{textReply: "CMPT-001 is currently Pending."}
	svc := NewAssistantService(gen, true)

	complaints := []models.Complaint{{ComplaintID: "CMPT-001", Status: models.StatusPending}}
	answer := svc.AnswerQuery(context.Background(), "What is the status of CMPT-001?", complaints)

	if answer != "CMPT-001 is currently Pending." {
		t.Errorf("answer: got %q", answer)
	}
	if !strings.Contains(gen.lastSystem, "SudharSetu") {
		t.Error("system instruction must carry the support persona")
	}
	if !strings.Contains(gen.lastText, "CMPT-001") {
		t.Error("contents must include the complaint snapshot")
	}
	if !strings.Contains(gen.lastText, "What is the status of CMPT-001?") {
		t.Error("contents must include the user's question")
	}
}

func TestAnswerQuery_ApologyOnFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewAssistantService(gen, true)

	answer := svc.AnswerQuery(context.Background(), "hello", nil)
	if answer != chatApology {
		t.Errorf("expected the fixed apology string, got %q", answer)
	}
}

func TestVerifyImage_Verdicts(t *testing.T) {
	cases := []struct {
		reply string
		want  bool
	}{
		{"yes", true},
		{"Yes", true},
		{" YES \n", true},
		{"no", false},
		{"No.", false},
		// anything that is not a literal yes fails the check
		{"maybe", false},
		{"", false},
	}

	for _, tc := range cases {
		gen := &fakeGenerator{imageReply: tc.reply}
		svc := NewAssistantService(gen, true)
		got := svc.VerifyImage(context.Background(), []byte{0x1}, "image/jpeg", models.TypePothole)
		if got != tc.want {
			t.Errorf("reply %q: got %v, want %v", tc.reply, got, tc.want)
		}
	}
}

func TestVerifyImage_PromptNamesClaimedType(t *testing.T) {
	gen := &fakeGenerator{imageReply: "yes"}
	svc := NewAssistantService(gen, true)

	svc.VerifyImage(context.Background(), []byte{0x1}, "image/png", models.TypeStreetlight)
	if !strings.Contains(gen.lastPrompt, string(models.TypeStreetlight)) {
		t.Errorf("prompt must name the claimed type, got %q", gen.lastPrompt)
	}
}

func TestVerifyImage_FailOpenPolicy(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}

	open := NewAssistantService(gen, true)
	if !open.VerifyImage(context.Background(), []byte{0x1}, "image/jpeg", models.TypePothole) {
		t.Error("fail-open policy must pass a failed verification")
	}

	strict := NewAssistantService(gen, false)
	if strict.VerifyImage(context.Background(), []byte{0x1}, "image/jpeg", models.TypePothole) {
		t.Error("strict policy must block a failed verification")
	}
}
