package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/normalization"
	"github.com/madprep/madprep-backend/internal/prompt"
)

type fakeGateway struct {
	lastPrompt string
	reply      string
	err        error
}

func (f *fakeGateway) GenerateText(ctx context.Context, p string) (string, error) {
	f.lastPrompt = p
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testTemplates() *prompt.Templates {
	return &prompt.Templates{
		Concepts: "Concepts for {{job_role}} at {{company_name}} ({{job_link}})",
		Roadmap:  "Roadmap for {{job_role}} at {{company_name}} ({{job_link}}): {{dsa_topics}} {{core_fundamentals}} over {{total_prep_days}} days, {{daily_hours}}h/day",
	}
}

func TestGenerateConcepts(t *testing.T) {
	gw := &fakeGateway{reply: `Sure, here you go:
{"dsa_topics": {"arrays": 10, "graphs": "3"}, "core_fundamentals": ["OS 7", "DBMS"]}
Good luck!`}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	result, err := svc.GenerateConcepts(context.Background(), "Acme", "SWE Intern", "https://acme.test/jobs/1")
	require.NoError(t, err)

	require.Contains(t, gw.lastPrompt, "SWE Intern")
	require.Contains(t, gw.lastPrompt, "Acme")
	require.NotContains(t, gw.lastPrompt, "{{")

	score, ok := result.DSATopics.Get("arrays")
	require.True(t, ok)
	require.Equal(t, 10, score)
	score, ok = result.DSATopics.Get("graphs")
	require.True(t, ok)
	require.Equal(t, 3, score)

	require.Len(t, result.CoreFundamentals, 2)
	require.Equal(t, "OS", result.CoreFundamentals[0].Name)
	require.Equal(t, 7, result.CoreFundamentals[0].Score)
	require.Equal(t, "DBMS", result.CoreFundamentals[1].Name)
	require.Equal(t, 1, result.CoreFundamentals[1].Score)
}

func TestGenerateConceptsMissingGroup(t *testing.T) {
	gw := &fakeGateway{reply: `{"dsa_topics": {"arrays": 5}}`}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	result, err := svc.GenerateConcepts(context.Background(), "Acme", "SWE", "link")
	require.NoError(t, err)
	require.Len(t, result.DSATopics, 1)
	require.Empty(t, result.CoreFundamentals)
}

func TestGenerateConceptsBothGroupsEmpty(t *testing.T) {
	gw := &fakeGateway{reply: `{"dsa_topics": {}, "core_fundamentals": []}`}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	_, err := svc.GenerateConcepts(context.Background(), "Acme", "SWE", "link")
	require.ErrorIs(t, err, normalization.ErrEmptyResult)
}

func TestGenerateConceptsNoJSON(t *testing.T) {
	gw := &fakeGateway{reply: "I could not find anything useful."}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	_, err := svc.GenerateConcepts(context.Background(), "Acme", "SWE", "link")
	var notFound *normalization.NoJSONFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, gw.reply, notFound.Raw)
}

func TestGenerateConceptsGatewayFailure(t *testing.T) {
	gatewayErr := errors.New("gemini http 503: overloaded")
	gw := &fakeGateway{err: gatewayErr}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	_, err := svc.GenerateConcepts(context.Background(), "Acme", "SWE", "link")
	require.ErrorIs(t, err, gatewayErr)
}

func TestGenerateRoadmap(t *testing.T) {
	gw := &fakeGateway{reply: `{"roadmap": [{"day": 1, "checklist": [{"title": "read", "url": "https://x.test/a"}]}], "summary": {"total_days": 1}}`}
	svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

	roadmap, err := svc.GenerateRoadmap(context.Background(), RoadmapGenInput{
		CompanyName:      "Acme",
		JobRole:          "SWE",
		JobLink:          "https://acme.test/jobs/1",
		DSATopics:        map[string]any{"arrays": map[string]any{"importance": 7, "confidence": 3}},
		CoreFundamentals: map[string]any{"OS": map[string]any{"importance": 5, "confidence": 2}},
		TotalPrepDays:    30,
		DailyHours:       2,
	})
	require.NoError(t, err)
	require.Contains(t, roadmap, "roadmap")

	require.Contains(t, gw.lastPrompt, `"importance":7`)
	require.Contains(t, gw.lastPrompt, "30 days")
	require.False(t, strings.Contains(gw.lastPrompt, "{{"), "prompt still had placeholders: %s", gw.lastPrompt)
}

func TestGenerateRoadmapWrongShape(t *testing.T) {
	for _, reply := range []string{
		`{"summary": {}}`,
		`{"roadmap": "not a list"}`,
		`{"roadmap": []}`,
	} {
		gw := &fakeGateway{reply: reply}
		svc := NewConceptsService(logger.NewNop(), gw, testTemplates())

		_, err := svc.GenerateRoadmap(context.Background(), RoadmapGenInput{CompanyName: "Acme", JobRole: "SWE"})
		var shapeErr *normalization.InvalidShapeError
		require.True(t, errors.As(err, &shapeErr), fmt.Sprintf("reply %s: got %v", reply, err))
	}
}
