package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/repos"
	"github.com/madprep/madprep-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&types.User{}, &types.Roadmap{}, &types.URLStatus{}))
	return gdb
}

func newTestRoadmapService(t *testing.T) (RoadmapService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	svc := NewRoadmapService(
		gdb,
		log,
		repos.NewUserRepo(gdb, log),
		repos.NewRoadmapRepo(gdb, log),
		repos.NewURLStatusRepo(gdb, log),
	)
	return svc, gdb
}

func roadmapWithURLs(urls ...string) map[string]any {
	checklist := make([]any, 0, len(urls))
	for _, u := range urls {
		checklist = append(checklist, map[string]any{"title": "read", "url": u})
	}
	return map[string]any{
		"roadmap": []any{
			map[string]any{"day": 1.0, "focus": "arrays", "checklist": checklist},
		},
		"summary": map[string]any{"total_days": 1.0},
	}
}

func TestSaveRegistersChecklistURLs(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()

	err := svc.Save(ctx, "u1", "Acme", roadmapWithURLs("https://x.test/a", "https://x.test/b", " https://x.test/a "))
	require.NoError(t, err)

	var rows []types.URLStatus
	require.NoError(t, gdb.Order("url").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Equal(t, "https://x.test/a", rows[0].URL)
	require.Equal(t, "https://x.test/b", rows[1].URL)
	require.False(t, rows[0].Checked)
	require.False(t, rows[1].Checked)
}

func TestExtractAndMergeIsIdempotent(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()
	rm := roadmapWithURLs("https://x.test/a", "https://x.test/b")

	require.NoError(t, svc.ExtractAndMergeURLs(ctx, "u1", rm))

	// Check one url, then merge the same roadmap again.
	ok, err := svc.SetURLStatus(ctx, "u1", "https://x.test/a", true)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.ExtractAndMergeURLs(ctx, "u1", rm))

	var rows []types.URLStatus
	require.NoError(t, gdb.Order("url").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.True(t, rows[0].Checked, "checked state must survive a re-merge")
	require.False(t, rows[1].Checked)
}

func TestExtractAndMergeEmptyRoadmapIsNoop(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()

	for _, rm := range []map[string]any{
		{},
		{"roadmap": []any{}},
		{"roadmap": "not a list"},
		roadmapWithURLs("", "   "),
	} {
		require.NoError(t, svc.ExtractAndMergeURLs(ctx, "u1", rm))
	}

	var count int64
	require.NoError(t, gdb.Model(&types.URLStatus{}).Count(&count).Error)
	require.Zero(t, count)

	// No write means no implicit user creation either.
	var users int64
	require.NoError(t, gdb.Model(&types.User{}).Count(&users).Error)
	require.Zero(t, users)
}

func TestURLStatusRoundTrip(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()

	require.NoError(t, svc.ExtractAndMergeURLs(ctx, "u1", roadmapWithURLs("https://x.test/a")))

	ok, err := svc.SetURLStatus(ctx, "u1", "https://x.test/a", true)
	require.NoError(t, err)
	require.True(t, ok)

	status, err := svc.GetURLStatus(ctx, "u1", "https://x.test/a")
	require.NoError(t, err)
	require.NotNil(t, status)
	require.True(t, *status)

	ok, err = svc.SetURLStatus(ctx, "u1", "https://x.test/a", false)
	require.NoError(t, err)
	require.True(t, ok)

	status, err = svc.GetURLStatus(ctx, "u1", "https://x.test/a")
	require.NoError(t, err)
	require.NotNil(t, status)
	require.False(t, *status)

	var count int64
	require.NoError(t, gdb.Model(&types.URLStatus{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "toggling must not accumulate duplicate rows")
}

func TestGetURLStatusUnknownIsNil(t *testing.T) {
	svc, _ := newTestRoadmapService(t)
	ctx := context.Background()

	status, err := svc.GetURLStatus(ctx, "u1", "https://never.seen/")
	require.NoError(t, err)
	require.Nil(t, status)

	status, err = svc.GetURLStatus(ctx, "u1", "   ")
	require.NoError(t, err)
	require.Nil(t, status)
}

func TestSetURLStatusWithoutUserIsNoop(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()

	ok, err := svc.SetURLStatus(ctx, "ghost", "https://x.test/a", true)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.SetURLStatus(ctx, "ghost", "", true)
	require.NoError(t, err)
	require.False(t, ok)

	var count int64
	require.NoError(t, gdb.Model(&types.URLStatus{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSaveKeepsOtherCompanies(t *testing.T) {
	svc, _ := newTestRoadmapService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "u1", "Acme", roadmapWithURLs("https://x.test/a")))
	require.NoError(t, svc.Save(ctx, "u1", "Other", roadmapWithURLs("https://x.test/b")))

	result, err := svc.List(ctx, "u1")
	require.NoError(t, err)

	user := result["u1"].(map[string]any)
	roadmaps := user["roadmaps"].(map[string]any)
	require.Contains(t, roadmaps, "Acme")
	require.Contains(t, roadmaps, "Other")
}

func TestSaveReplacesSameCompany(t *testing.T) {
	svc, _ := newTestRoadmapService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "u1", "Acme", roadmapWithURLs("https://x.test/a")))
	replacement := roadmapWithURLs("https://x.test/b")
	require.NoError(t, svc.Save(ctx, "u1", "Acme", replacement))

	result, err := svc.List(ctx, "u1")
	require.NoError(t, err)

	roadmaps := result["u1"].(map[string]any)["roadmaps"].(map[string]any)
	require.Len(t, roadmaps, 1)

	days := roadmaps["Acme"].(map[string]any)["roadmap"].([]any)
	checklist := days[0].(map[string]any)["checklist"].([]any)
	item := checklist[0].(map[string]any)
	require.Equal(t, "https://x.test/b", item["url"])
}

func TestListOverlaysCheckedState(t *testing.T) {
	svc, gdb := newTestRoadmapService(t)
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, "u1", "Acme", roadmapWithURLs("https://x.test/a")))

	readItem := func() map[string]any {
		result, err := svc.List(ctx, "u1")
		require.NoError(t, err)
		roadmaps := result["u1"].(map[string]any)["roadmaps"].(map[string]any)
		days := roadmaps["Acme"].(map[string]any)["roadmap"].([]any)
		checklist := days[0].(map[string]any)["checklist"].([]any)
		return checklist[0].(map[string]any)
	}

	require.Equal(t, false, readItem()["checked"])

	ok, err := svc.SetURLStatus(ctx, "u1", "https://x.test/a", true)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, true, readItem()["checked"])

	// The stored payload itself must stay untouched by the overlay.
	var row types.Roadmap
	require.NoError(t, gdb.Where("user_id = ? AND company_name = ?", "u1", "Acme").First(&row).Error)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(row.Payload, &stored))
	days := stored["roadmap"].([]any)
	item := days[0].(map[string]any)["checklist"].([]any)[0].(map[string]any)
	_, persisted := item["checked"]
	require.False(t, persisted, "checked must never be written into the roadmap payload")
}

func TestListUnknownUserIsEmpty(t *testing.T) {
	svc, _ := newTestRoadmapService(t)

	result, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	roadmaps := result["nobody"].(map[string]any)["roadmaps"].(map[string]any)
	require.Empty(t, roadmaps)
}
