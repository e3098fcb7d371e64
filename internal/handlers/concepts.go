package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madprep/madprep-backend/internal/normalization"
	"github.com/madprep/madprep-backend/internal/services"
)

type ConceptsHandler struct {
	conceptsService services.ConceptsService
}

func NewConceptsHandler(conceptsService services.ConceptsService) *ConceptsHandler {
	return &ConceptsHandler{conceptsService: conceptsService}
}

type conceptsRequest struct {
	Role    string `json:"role" binding:"required"`
	Company string `json:"company" binding:"required"`
	JobLink string `json:"jobLink" binding:"required"`
}

// Generate extracts the study-topic groups for a job posting.
func (ch *ConceptsHandler) Generate(c *gin.Context) {
	var req conceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := ch.conceptsService.GenerateConcepts(c.Request.Context(), req.Company, req.Role, req.JobLink)
	if err != nil {
		RespondError(c, generationStatus(err), "concepts_generation_failed", err)
		return
	}
	RespondOK(c, result)
}

// generationStatus maps generation-path failures onto HTTP statuses. Model
// output problems are upstream failures; everything else is ours.
func generationStatus(err error) int {
	var (
		notFound  *normalization.NoJSONFoundError
		malformed *normalization.MalformedJSONError
		shape     *normalization.InvalidShapeError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &malformed), errors.As(err, &shape), errors.Is(err, normalization.ErrEmptyResult):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
