package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/normalization"
	"github.com/madprep/madprep-backend/internal/prompt"
)

// ConceptsResult is the normalized study-topic extraction for one job
// posting. Both groups are ordered and capped by the normalizer.
type ConceptsResult struct {
	DSATopics        normalization.TopicScores `json:"dsa_topics"`
	CoreFundamentals normalization.TopicScores `json:"core_fundamentals"`
}

// RoadmapGenInput carries everything the roadmap prompt needs. The topic
// groups arrive as the client's importance/confidence maps and are embedded
// into the prompt as JSON.
type RoadmapGenInput struct {
	CompanyName      string
	JobRole          string
	JobLink          string
	DSATopics        map[string]any
	CoreFundamentals map[string]any
	TotalPrepDays    int
	DailyHours       int
}

type ConceptsService interface {
	GenerateConcepts(ctx context.Context, companyName, jobRole, jobLink string) (*ConceptsResult, error)
	GenerateRoadmap(ctx context.Context, in RoadmapGenInput) (map[string]any, error)
}

type conceptsService struct {
	log       *logger.Logger
	gateway   GenerationGateway
	templates *prompt.Templates
}

func NewConceptsService(log *logger.Logger, gateway GenerationGateway, templates *prompt.Templates) ConceptsService {
	serviceLog := log.With("service", "ConceptsService")
	return &conceptsService{log: serviceLog, gateway: gateway, templates: templates}
}

// GenerateConcepts asks the model for the topic groups of a job posting and
// coerces whatever comes back into ordered topic scores. A group the model
// omitted or left empty normalizes to an empty group; only both groups empty
// is a failure.
func (cs *conceptsService) GenerateConcepts(ctx context.Context, companyName, jobRole, jobLink string) (*ConceptsResult, error) {
	rendered, err := prompt.Render(cs.templates.Concepts, map[string]string{
		"company_name": strings.TrimSpace(companyName),
		"job_role":     strings.TrimSpace(jobRole),
		"job_link":     strings.TrimSpace(jobLink),
	})
	if err != nil {
		return nil, err
	}

	raw, err := cs.gateway.GenerateText(ctx, rendered)
	if err != nil {
		return nil, fmt.Errorf("concepts generation: %w", err)
	}

	obj, err := normalization.ExtractJSON(raw)
	if err != nil {
		cs.logExtractFailure("concepts", err)
		return nil, err
	}

	dsa, err := cs.normalizeGroup(obj, "dsa_topics")
	if err != nil {
		return nil, err
	}
	core, err := cs.normalizeGroup(obj, "core_fundamentals")
	if err != nil {
		return nil, err
	}
	if len(dsa) == 0 && len(core) == 0 {
		return nil, normalization.ErrEmptyResult
	}

	return &ConceptsResult{DSATopics: dsa, CoreFundamentals: core}, nil
}

// GenerateRoadmap renders the roadmap prompt with the candidate's topic data,
// calls the gateway, and returns the parsed roadmap object ready for Save.
func (cs *conceptsService) GenerateRoadmap(ctx context.Context, in RoadmapGenInput) (map[string]any, error) {
	dsaJSON, err := json.Marshal(in.DSATopics)
	if err != nil {
		return nil, fmt.Errorf("marshal dsa topics: %w", err)
	}
	coreJSON, err := json.Marshal(in.CoreFundamentals)
	if err != nil {
		return nil, fmt.Errorf("marshal core fundamentals: %w", err)
	}

	rendered, err := prompt.Render(cs.templates.Roadmap, map[string]string{
		"company_name":      strings.TrimSpace(in.CompanyName),
		"job_role":          strings.TrimSpace(in.JobRole),
		"job_link":          strings.TrimSpace(in.JobLink),
		"dsa_topics":        string(dsaJSON),
		"core_fundamentals": string(coreJSON),
		"total_prep_days":   strconv.Itoa(in.TotalPrepDays),
		"daily_hours":       strconv.Itoa(in.DailyHours),
	})
	if err != nil {
		return nil, err
	}

	raw, err := cs.gateway.GenerateText(ctx, rendered)
	if err != nil {
		return nil, fmt.Errorf("roadmap generation: %w", err)
	}

	obj, err := normalization.ExtractJSON(raw)
	if err != nil {
		cs.logExtractFailure("roadmap", err)
		return nil, err
	}

	days, ok := obj["roadmap"].([]any)
	if !ok || len(days) == 0 {
		return nil, &normalization.InvalidShapeError{Got: "roadmap object without a roadmap array"}
	}
	return obj, nil
}

// normalizeGroup coerces one topic group. A missing key or an empty outcome
// yields an empty group; a present-but-wrong-shaped value is a hard failure.
func (cs *conceptsService) normalizeGroup(obj map[string]any, key string) (normalization.TopicScores, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	scores, err := normalization.NormalizeTopics(v)
	if errors.Is(err, normalization.ErrEmptyResult) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", key, err)
	}
	return scores, nil
}

// logExtractFailure keeps the raw/candidate text inspectable server-side.
// The client only ever sees a generic failure.
func (cs *conceptsService) logExtractFailure(stage string, err error) {
	var notFound *normalization.NoJSONFoundError
	if errors.As(err, &notFound) {
		cs.log.Warn("Model output contained no JSON", "stage", stage, "raw", notFound.Raw)
		return
	}
	var malformed *normalization.MalformedJSONError
	if errors.As(err, &malformed) {
		cs.log.Warn("Model output JSON failed to parse", "stage", stage, "candidate", malformed.Candidate, "raw", malformed.Raw, "error", malformed.Err)
	}
}
