package ihomepagerepo

import (
	"context"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
)

// IHomepageRepository is an interface for the homepage content postgres repository.
type IHomepageRepository interface {
	InsertSpecialGroup(ctx context.Context, g homepage.SpecialGroup) error
	GetSpecialGroupByName(ctx context.Context, name string) (*homepage.SpecialGroup, error)
	ListSpecialGroups(ctx context.Context) ([]homepage.SpecialGroup, error)

	InsertSpecialEvent(ctx context.Context, e homepage.SpecialEvent) error
	ListSpecialEvents(ctx context.Context) ([]homepage.SpecialEvent, error)

	GetCompanyInfo(ctx context.Context) (*homepage.CompanyInfo, error)
	UpsertCompanyInfo(ctx context.Context, info homepage.CompanyInfo) error
}
