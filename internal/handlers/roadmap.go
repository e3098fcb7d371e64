package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/madprep/madprep-backend/internal/requestdata"
	"github.com/madprep/madprep-backend/internal/services"
)

type RoadmapHandler struct {
	roadmapService  services.RoadmapService
	conceptsService services.ConceptsService
}

func NewRoadmapHandler(roadmapService services.RoadmapService, conceptsService services.ConceptsService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService, conceptsService: conceptsService}
}

type saveRoadmapRequest struct {
	CompanyName string         `json:"company_name" binding:"required"`
	RoadmapJSON map[string]any `json:"roadmap_json" binding:"required"`
}

type generateRoadmapRequest struct {
	Company          string         `json:"company" binding:"required"`
	Role             string         `json:"role" binding:"required"`
	JobLink          string         `json:"jobLink"`
	DSATopics        map[string]any `json:"dsa_topics"`
	CoreFundamentals map[string]any `json:"core_fundamentals"`
	TotalPrepDays    int            `json:"total_prep_days"`
	DailyHours       int            `json:"daily_hours"`
}

type getItemRequest struct {
	URL string `json:"url" binding:"required"`
}

type saveItemRequest struct {
	URL     string `json:"url" binding:"required"`
	Checked *bool  `json:"checked" binding:"required"`
}

func callerID(c *gin.Context) (string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthenticated", fmt.Errorf("no authenticated user"))
		return "", false
	}
	return rd.UserID, true
}

// Save stores a roadmap under the authenticated user and registers its
// checklist urls.
func (rh *RoadmapHandler) Save(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req saveRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("company_name must not be blank"))
		return
	}

	if err := rh.roadmapService.Save(c.Request.Context(), userID, companyName, req.RoadmapJSON); err != nil {
		RespondError(c, http.StatusInternalServerError, "roadmap_save_failed", err)
		return
	}
	RespondOK(c, gin.H{"ok": true, "message": "Roadmap saved"})
}

// Generate produces a day-by-day roadmap from topic importance data.
func (rh *RoadmapHandler) Generate(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}

	var req generateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.TotalPrepDays <= 0 {
		req.TotalPrepDays = 30
	}
	if req.DailyHours <= 0 {
		req.DailyHours = 2
	}

	roadmap, err := rh.conceptsService.GenerateRoadmap(c.Request.Context(), services.RoadmapGenInput{
		CompanyName:      req.Company,
		JobRole:          req.Role,
		JobLink:          req.JobLink,
		DSATopics:        req.DSATopics,
		CoreFundamentals: req.CoreFundamentals,
		TotalPrepDays:    req.TotalPrepDays,
		DailyHours:       req.DailyHours,
	})
	if err != nil {
		RespondError(c, generationStatus(err), "roadmap_generation_failed", err)
		return
	}
	RespondOK(c, roadmap)
}

// List returns every stored roadmap for a user with checked state overlaid.
// The user is addressed by query parameter rather than by token.
func (rh *RoadmapHandler) List(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("user_id query parameter is required"))
		return
	}

	result, err := rh.roadmapService.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "roadmap_list_failed", err)
		return
	}
	RespondOK(c, result)
}

// GetItem reports the checked state for one url. An unknown url comes back
// with checked=null so the client can tell it apart from known-and-unchecked.
func (rh *RoadmapHandler) GetItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req getItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	status, err := rh.roadmapService.GetURLStatus(c.Request.Context(), userID, req.URL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "url_status_failed", err)
		return
	}
	RespondOK(c, gin.H{"url": req.URL, "checked": status})
}

// PutItem sets the checked state for one url.
func (rh *RoadmapHandler) PutItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req saveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	updated, err := rh.roadmapService.SetURLStatus(c.Request.Context(), userID, req.URL, *req.Checked)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "url_status_failed", err)
		return
	}
	if !updated {
		RespondError(c, http.StatusNotFound, "user_not_found", fmt.Errorf("no record for user"))
		return
	}
	RespondOK(c, gin.H{"ok": true, "message": "Item updated"})
}
