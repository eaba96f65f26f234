package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

// AssistantController exposes the chat surface and the standalone image
// check. The chat endpoint answers against a snapshot of the full
// record list; adapter failures never surface as HTTP errors, only as
// the assistant's apology text or the verification verdict.
type AssistantController struct {
	assistant  services.AssistantService
	complaints services.ComplaintService
}

func NewAssistantController(assistant services.AssistantService, complaints services.ComplaintService) *AssistantController {
	return &AssistantController{assistant: assistant, complaints: complaints}
}

func (ctr *AssistantController) Register(g *echo.Group) {
	g.POST("/assistant/chat", ctr.Chat)
	g.POST("/assistant/verify-image", ctr.VerifyImage)
}

// Chat handles POST /assistant/chat.
func (ctr *AssistantController) Chat(c echo.Context) error {
	req := new(models.ChatRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}
	if req.Question == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "question is required"},
		)
	}

	complaints, err := ctr.complaints.List(c.Request().Context(), models.StatusAll)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			map[string]string{"error": err.Error()},
		)
	}

	answer := ctr.assistant.AnswerQuery(c.Request().Context(), req.Question, complaints)
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

// VerifyImage handles POST /assistant/verify-image.
func (ctr *AssistantController) VerifyImage(c echo.Context) error {
	req := new(models.VerifyImageRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "invalid request format: " + err.Error()},
		)
	}
	if req.Photo == "" || req.MimeType == "" || req.Type == "" {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "photo, mimeType and type are required"},
		)
	}

	image, err := base64.StdEncoding.DecodeString(req.Photo)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			map[string]string{"error": "photo must be base64 encoded"},
		)
	}

	verified := ctr.assistant.VerifyImage(c.Request().Context(), image, req.MimeType, req.Type)
	return c.JSON(http.StatusOK, map[string]bool{"verified": verified})
}
