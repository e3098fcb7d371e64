package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/madprep/madprep-backend/internal/logger"
	"github.com/madprep/madprep-backend/internal/repos"
	"github.com/madprep/madprep-backend/internal/types"
)

// RoadmapService owns roadmap persistence and the url checklist registry.
// The registry rows are the single source of truth for checked state; the
// roadmap payloads never store it. Checked flags are overlaid fresh on every
// read, so many saved roadmaps referencing the same url stay consistent.
type RoadmapService interface {
	Save(ctx context.Context, userID, companyName string, roadmap map[string]any) error
	List(ctx context.Context, userID string) (map[string]any, error)
	ExtractAndMergeURLs(ctx context.Context, userID string, roadmap map[string]any) error
	GetURLStatus(ctx context.Context, userID, url string) (*bool, error)
	SetURLStatus(ctx context.Context, userID, url string, checked bool) (bool, error)
}

type roadmapService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	roadmapRepo   repos.RoadmapRepo
	urlStatusRepo repos.URLStatusRepo
}

func NewRoadmapService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, roadmapRepo repos.RoadmapRepo, urlStatusRepo repos.URLStatusRepo) RoadmapService {
	serviceLog := log.With("service", "RoadmapService")
	return &roadmapService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		roadmapRepo:   roadmapRepo,
		urlStatusRepo: urlStatusRepo,
	}
}

// Save replaces the whole payload stored under (user, company) and then
// registers the payload's checklist urls. The two writes are sequential, not
// atomic: a crash in between leaves a saved roadmap whose urls are not yet
// registered, which is acceptable because the registry step is idempotent and
// re-derivable from the stored payload.
func (rs *roadmapService) Save(ctx context.Context, userID, companyName string, roadmap map[string]any) error {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return fmt.Errorf("company name is required")
	}
	if roadmap == nil {
		return fmt.Errorf("roadmap payload is required")
	}

	payload, err := json.Marshal(roadmap)
	if err != nil {
		return fmt.Errorf("marshal roadmap payload: %w", err)
	}

	if err := rs.ensureUser(ctx, userID); err != nil {
		return err
	}

	row := &types.Roadmap{
		UserID:      userID,
		CompanyName: companyName,
		Payload:     datatypes.JSON(payload),
	}
	if err := rs.roadmapRepo.Upsert(ctx, nil, row); err != nil {
		return fmt.Errorf("save roadmap for %q: %w", companyName, err)
	}
	rs.log.Debug("Roadmap saved", "user_id", userID, "company", companyName)

	return rs.ExtractAndMergeURLs(ctx, userID, roadmap)
}

// List returns every stored roadmap for the user with current checked state
// overlaid onto each checklist item. Shape mirrors the storage contract:
// {userID: {"roadmaps": {company: payload}}}.
func (rs *roadmapService) List(ctx context.Context, userID string) (map[string]any, error) {
	var (
		rows     []*types.Roadmap
		statuses []*types.URLStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = rs.roadmapRepo.GetByUserID(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = rs.urlStatusRepo.GetByUserID(gctx, nil, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list roadmaps for user: %w", err)
	}

	checked := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		checked[st.URL] = st.Checked
	}

	roadmaps := map[string]any{}
	for _, row := range rows {
		var payload map[string]any
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			rs.log.Warn("Skipping roadmap with unreadable payload", "user_id", userID, "company", row.CompanyName, "error", err)
			continue
		}
		overlayChecked(payload, checked)
		roadmaps[row.CompanyName] = payload
	}

	return map[string]any{
		userID: map[string]any{"roadmaps": roadmaps},
	}, nil
}

// ExtractAndMergeURLs walks roadmap[*].checklist[*].url, dedupes, and inserts
// any url the registry has not seen for this user. Existing rows keep their
// checked state untouched. An empty extraction is a no-op, no write happens.
func (rs *roadmapService) ExtractAndMergeURLs(ctx context.Context, userID string, roadmap map[string]any) error {
	urls := collectChecklistURLs(roadmap)
	if len(urls) == 0 {
		return nil
	}

	if err := rs.ensureUser(ctx, userID); err != nil {
		return err
	}

	rows := make([]*types.URLStatus, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, &types.URLStatus{UserID: userID, URL: u, Checked: false})
	}
	if err := rs.urlStatusRepo.InsertMissing(ctx, nil, rows); err != nil {
		return fmt.Errorf("merge checklist urls: %w", err)
	}
	rs.log.Debug("Checklist urls merged", "user_id", userID, "extracted", len(urls))
	return nil
}

// GetURLStatus reports the checked state for one url. nil means the registry
// has never seen the url, which callers must treat differently from a known
// unchecked one. Blank urls resolve to unknown rather than erroring, to keep
// this path resilient to malformed roadmap content.
func (rs *roadmapService) GetURLStatus(ctx context.Context, userID, url string) (*bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, nil
	}
	row, err := rs.urlStatusRepo.GetByUserAndURL(ctx, nil, userID, url)
	if err != nil {
		return nil, fmt.Errorf("get url status: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return &row.Checked, nil
}

// SetURLStatus upserts one (user, url) row. Returns false without error when
// the user record does not exist or the url is blank; both are no-ops.
func (rs *roadmapService) SetURLStatus(ctx context.Context, userID, url string, checked bool) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, nil
	}
	exists, err := rs.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return false, fmt.Errorf("check user record: %w", err)
	}
	if !exists {
		rs.log.Debug("SetURLStatus ignored, user record absent", "user_id", userID)
		return false, nil
	}
	row := &types.URLStatus{UserID: userID, URL: url, Checked: checked}
	if err := rs.urlStatusRepo.Upsert(ctx, nil, row); err != nil {
		return false, fmt.Errorf("set url status: %w", err)
	}
	return true, nil
}

// ensureUser creates a bare profile row on first write so roadmap and url
// rows always have an owner, even before the profile endpoint is called.
func (rs *roadmapService) ensureUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	exists, err := rs.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("check user record: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := rs.userRepo.Create(ctx, nil, &types.User{UserID: userID}); err != nil {
		// A concurrent first write may have created the row already.
		if again, checkErr := rs.userRepo.Exists(ctx, nil, userID); checkErr == nil && again {
			return nil
		}
		return fmt.Errorf("create user record: %w", err)
	}
	return nil
}

// collectChecklistURLs walks roadmap["roadmap"][*]["checklist"][*]["url"],
// returning trimmed non-empty urls deduped in first-seen order. Nodes of the
// wrong shape are skipped, not errors; upstream roadmap content is untrusted.
func collectChecklistURLs(roadmap map[string]any) []string {
	days, ok := roadmap["roadmap"].([]any)
	if !ok {
		return nil
	}

	seen := map[string]struct{}{}
	var urls []string
	for _, day := range days {
		dayMap, ok := day.(map[string]any)
		if !ok {
			continue
		}
		checklist, ok := dayMap["checklist"].([]any)
		if !ok {
			continue
		}
		for _, item := range checklist {
			itemMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			url, ok := itemMap["url"].(string)
			if !ok {
				continue
			}
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			urls = append(urls, url)
		}
	}
	return urls
}

// overlayChecked stamps the current checked state onto every checklist item
// carrying a string url. Unknown urls display as unchecked. The stamp lives
// only on this in-memory copy; it is never written back to the payload.
func overlayChecked(payload map[string]any, checked map[string]bool) {
	days, ok := payload["roadmap"].([]any)
	if !ok {
		return
	}
	for _, day := range days {
		dayMap, ok := day.(map[string]any)
		if !ok {
			continue
		}
		checklist, ok := dayMap["checklist"].([]any)
		if !ok {
			continue
		}
		for _, item := range checklist {
			itemMap, ok := item.(map[string]any)
			if !ok {
				continue
			}
			url, ok := itemMap["url"].(string)
			if !ok {
				continue
			}
			itemMap["checked"] = checked[strings.TrimSpace(url)]
		}
	}
}
