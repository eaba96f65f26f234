package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/muskanVaswani/sudharsetu-backend/internal/metrics"
	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

const chatSystemInstruction = `You are a "SudharSetu" support chatbot. Your role is to provide citizens with the status of their civic complaints.
You must be friendly, professional, and concise.
You have access to a list of complaints in JSON format. Use this data to answer user questions.
If a user asks for the status of a specific complaint ID, find that complaint in the data and provide its status and any other relevant details like resolution notes.
If the complaint ID is not found, inform the user politely.
Do not answer questions unrelated to the provided civic complaints.`

// chatApology is returned whenever the generation backend fails.
const chatApology = "I'm sorry, I'm having trouble connecting to my knowledge base right now. Please try again later."

const remoteCallTimeout = 30 * time.Second

// AssistantService answers free-text status questions over the current
// complaint set and verifies that an attached photo depicts the claimed
// issue type.
type AssistantService interface {
	// AnswerQuery returns generated text, or a fixed apology string when
	// the backend fails. It never returns an error.
	AnswerQuery(ctx context.Context, question string, complaints []models.Complaint) string
	// VerifyImage returns true iff the model answers exactly "yes".
	// On a remote error it returns the configured fail-open policy: pass
	// by default, favoring submission throughput over strict checks.
	VerifyImage(ctx context.Context, image []byte, mimeType string, claimedType models.ComplaintType) bool
}

type assistantService struct {
	gen      contentGenerator
	failOpen bool
}

// NewAssistantService wires a content generator to the assistant
// policies. failOpen controls what a failed image verification counts
// as.
func NewAssistantService(gen contentGenerator, failOpen bool) AssistantService {
	return &assistantService{gen: gen, failOpen: failOpen}
}

func (s *assistantService) AnswerQuery(ctx context.Context, question string, complaints []models.Complaint) string {
	metrics.AssistantQueriesTotal.Inc()

	snapshot, err := json.MarshalIndent(complaints, "", "  ")
	if err != nil {
		log.Printf("assistant: failed to serialize complaints: %v", err)
		return chatApology
	}

	contents := fmt.Sprintf("Here is the current list of complaints:\n%s\n\nUser's question: %q", snapshot, question)

	ctx, cancel := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.GenerateText(ctx, chatSystemInstruction, contents)
	metrics.AssistantRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("assistant: chat generation failed: %v", err)
		return chatApology
	}

	return text
}

func (s *assistantService) VerifyImage(ctx context.Context, image []byte, mimeType string, claimedType models.ComplaintType) bool {
	metrics.ImageVerificationsTotal.Inc()

	prompt := fmt.Sprintf("Does this image contain a %q? Respond with only 'Yes' or 'No'.", string(claimedType))

	ctx, cancel := context.WithTimeout(ctx, remoteCallTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.gen.GenerateWithImage(ctx, image, mimeType, prompt)
	metrics.AssistantRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Printf("assistant: image verification failed: %v", err)
		if s.failOpen {
			metrics.ImageVerificationFailOpenTotal.Inc()
		}
		return s.failOpen
	}

	// Anything other than a literal yes counts as a failed check.
	return strings.ToLower(strings.TrimSpace(reply)) == "yes"
}
