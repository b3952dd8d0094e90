package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"mystica/pkg/imaging"
	"mystica/pkg/models"
	"mystica/pkg/oracle"
	"mystica/pkg/repository/session"
)

// InitialGreeting opens every new session, as if the seeker had typed it.
const InitialGreeting = "Hello, I wish to know my future!"

// FallbackMessage is the in-character reply shown when the pipeline fails.
const FallbackMessage = "The threads of fate are tangled. The Oracle needs a moment. Please try your query again."

// Workflow is the pipeline surface the handlers drive.
type Workflow interface {
	ProcessMessage(ctx context.Context, sessionID string, text string) ([]models.Message, error)
	ProcessHandprint(ctx context.Context, sessionID string, imageBase64 string) (string, error)
	RecordAssistantMessage(ctx context.Context, sessionID string, content string) error
}

// Handlers implements the oracle's HTTP API.
type Handlers struct {
	workflow Workflow
	sessions session.Repository
}

// NewHandlers constructs Handlers with the injected collaborators.
func NewHandlers(workflow Workflow, sessions session.Repository) *Handlers {
	return &Handlers{workflow: workflow, sessions: sessions}
}

// Register mounts all API routes on the given group.
func (h *Handlers) Register(g *echo.Group) {
	g.POST("/sessions", h.CreateSession)
	g.POST("/sessions/:id/messages", h.PostMessage)
	g.POST("/sessions/:id/handprint", h.PostHandprint)
	g.GET("/sessions/:id/messages", h.GetMessages)
	g.GET("/sessions/:id/profile", h.GetProfile)
}

type messageRequest struct {
	Text string `json:"text"`
}

type turnResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []models.Message `json:"messages"`
	Error     string           `json:"error,omitempty"`
	Stage     string           `json:"stage,omitempty"`
}

type handprintResponse struct {
	SessionID string `json:"session_id"`
	Analysis  string `json:"analysis,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

type profileResponse struct {
	SessionID         string   `json:"session_id"`
	Name              string   `json:"name"`
	DateOfBirth       string   `json:"date_of_birth"`
	Handprint         string   `json:"handprint"`
	ColorAssociations []string `json:"color_associations,omitempty"`
}

// CreateSession handles POST /api/v1/sessions. It allocates a session and
// runs the initial greeting through the pipeline so the oracle speaks first.
func (h *Handlers) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.sessions.Create(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses, err := h.workflow.ProcessMessage(ctx, sess.ID, InitialGreeting)
	if err != nil {
		return c.JSON(http.StatusOK, h.fallbackResponse(ctx, sess.ID, err))
	}

	return c.JSON(http.StatusCreated, turnResponse{SessionID: sess.ID, Messages: responses})
}

// PostMessage handles POST /api/v1/sessions/:id/messages: one seeker turn.
// Pipeline failures keep the seeker flow alive: the body carries the
// in-character fallback message plus the technical error, mirroring the dual
// surfacing of the original interface.
func (h *Handlers) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")

	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text must not be empty")
	}

	responses, err := h.workflow.ProcessMessage(ctx, sessionID, req.Text)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown session")
		}
		return c.JSON(http.StatusOK, h.fallbackResponse(ctx, sessionID, err))
	}

	return c.JSON(http.StatusOK, turnResponse{SessionID: sessionID, Messages: responses})
}

// PostHandprint handles POST /api/v1/sessions/:id/handprint with a multipart
// "image" file (jpg/jpeg/png). A repeated upload of the same filename after a
// successful analysis is reported as already analyzed.
func (h *Handlers) PostHandprint(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("id")

	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown session")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if !imaging.Allowed(fileHeader.Filename) {
		return echo.NewHTTPError(http.StatusBadRequest, "only jpg, jpeg and png images are accepted")
	}

	if sess.HandprintAnalyzed && sess.LastUploadedFilename == fileHeader.Filename {
		return c.JSON(http.StatusOK, handprintResponse{
			SessionID: sessionID,
			Analysis:  sess.Profile.HandprintAnalysis,
			Message:   "Palm analysis incorporated.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded image")
	}
	defer file.Close()

	imageBase64, err := imaging.ToJPEGBase64(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Remember the upload before analyzing, like the per-file flag of the
	// original interface.
	sess.LastUploadedFilename = fileHeader.Filename
	sess.HandprintAnalyzed = false
	if err := h.sessions.Put(ctx, sess); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	analysis, err := h.workflow.ProcessHandprint(ctx, sessionID, imageBase64)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("session_id", sessionID).Msg("handprint processing failed")
		return c.JSON(http.StatusBadGateway, handprintResponse{SessionID: sessionID, Error: err.Error()})
	}

	announcement := fmt.Sprintf("Mystica has gleaned from your palm: %q This insight will guide our session.", analysis)
	if err := h.workflow.RecordAssistantMessage(ctx, sessionID, announcement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, handprintResponse{
		SessionID: sessionID,
		Analysis:  analysis,
		Message:   announcement,
	})
}

// GetMessages handles GET /api/v1/sessions/:id/messages.
func (h *Handlers) GetMessages(c echo.Context) error {
	sess, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown session")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, turnResponse{SessionID: sess.ID, Messages: sess.Messages})
}

// GetProfile handles GET /api/v1/sessions/:id/profile: the oracle's-knowledge
// view of the seeker.
func (h *Handlers) GetProfile(c echo.Context) error {
	sess, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown session")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	handprint := "Not yet offered"
	if sess.Profile.HandprintAnalysis != "" {
		handprint = sess.Profile.HandprintAnalysis
	}
	return c.JSON(http.StatusOK, profileResponse{
		SessionID:         sess.ID,
		Name:              orUnknown(sess.Profile.Name),
		DateOfBirth:       orUnknown(sess.Profile.DateOfBirth),
		Handprint:         handprint,
		ColorAssociations: sess.ColorAssociations,
	})
}

// fallbackResponse records the in-character fallback in the visible history
// and packages it with the technical error.
func (h *Handlers) fallbackResponse(ctx context.Context, sessionID string, err error) turnResponse {
	log.Ctx(ctx).Error().Err(err).Str("session_id", sessionID).Msg("turn failed")

	if recErr := h.workflow.RecordAssistantMessage(ctx, sessionID, FallbackMessage); recErr != nil {
		log.Ctx(ctx).Error().Err(recErr).Str("session_id", sessionID).Msg("failed to record fallback message")
	}

	resp := turnResponse{
		SessionID: sessionID,
		Messages:  []models.Message{{Role: models.RoleAssistant, Content: FallbackMessage}},
		Error:     err.Error(),
	}
	if stage, ok := oracle.StageOf(err); ok {
		resp.Stage = string(stage)
	}
	return resp
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
