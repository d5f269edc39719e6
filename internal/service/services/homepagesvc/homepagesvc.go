package homepagesvc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/ihomepagerepo"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
)

// HomepageService manages homepage content: special groups, special events
// and the company profile.
type HomepageService struct {
	repo ihomepagerepo.IHomepageRepository
	now  func() time.Time
}

// option is a function that configures the HomepageService.
type option func(*HomepageService)

// MustNewHomepageService creates a new HomepageService.
func MustNewHomepageService(opts ...option) *HomepageService {
	s := &HomepageService{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.repo == nil {
		panic("homepagesvc: no homepage repository configured")
	}

	return s
}

// WithHomepageRepository sets the homepage repository for the HomepageService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHomepageRepository(repo ihomepagerepo.IHomepageRepository) option {
	return func(s *HomepageService) {
		s.repo = repo
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *HomepageService) {
		s.now = now
	}
}

// AddSpecialGroup creates a homepage special group. Group names are unique;
// a taken name yields homepage.ErrDuplicateGroup.
func (s *HomepageService) AddSpecialGroup(ctx context.Context, g homepage.SpecialGroup) (uuid.UUID, error) {
	existing, err := s.repo.GetSpecialGroupByName(ctx, g.GroupName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add special group: %w", err)
	}
	if existing != nil {
		return uuid.Nil, homepage.ErrDuplicateGroup
	}

	g.GroupID = uuid.New()
	if err := s.repo.InsertSpecialGroup(ctx, g); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add special group: %w", err)
	}

	return g.GroupID, nil
}

// ListSpecialGroups returns all special groups.
func (s *HomepageService) ListSpecialGroups(ctx context.Context) ([]homepage.SpecialGroup, error) {
	groups, err := s.repo.ListSpecialGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list special groups: %w", err)
	}

	return groups, nil
}

// AddSpecialEvent creates a special event. The event date is server-set.
func (s *HomepageService) AddSpecialEvent(ctx context.Context, e homepage.SpecialEvent) (homepage.SpecialEvent, error) {
	e.EventID = uuid.New()
	e.EventDate = s.now()

	if err := s.repo.InsertSpecialEvent(ctx, e); err != nil {
		return homepage.SpecialEvent{}, fmt.Errorf("failed to add special event: %w", err)
	}

	return e, nil
}

// ListSpecialEvents returns all special events.
func (s *HomepageService) ListSpecialEvents(ctx context.Context) ([]homepage.SpecialEvent, error) {
	events, err := s.repo.ListSpecialEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list special events: %w", err)
	}

	return events, nil
}

// GetCompanyInfo returns the company profile shown on the homepage.
func (s *HomepageService) GetCompanyInfo(ctx context.Context) (*homepage.CompanyInfo, error) {
	info, err := s.repo.GetCompanyInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get company info: %w", err)
	}

	return info, nil
}

// UpsertCompanyInfo creates or replaces the company profile.
func (s *HomepageService) UpsertCompanyInfo(ctx context.Context, info homepage.CompanyInfo) (uuid.UUID, error) {
	if info.CompanyID == uuid.Nil {
		info.CompanyID = uuid.New()
	}

	if err := s.repo.UpsertCompanyInfo(ctx, info); err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert company info: %w", err)
	}

	return info.CompanyID, nil
}
