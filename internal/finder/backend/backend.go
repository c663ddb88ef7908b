// internal/finder/backend/backend.go
package backend

import (
	"context"
	"net/url"

	"activity-finder/internal/common/cache"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/finder/refdata"
	"activity-finder/internal/models"
	"activity-finder/pkg/settings"
)

// Backend is the capability set a finder search implementation must satisfy.
// Alternate implementations (a CRM-backed search, for instance) can be
// registered under their own ID and swapped in through configuration without
// touching the HTTP layer.
type Backend interface {
	RunProgramSearch(ctx context.Context, params models.SearchParameters, logID int64) (*models.SearchResponse, error)
	GetLocations(ctx context.Context) ([]models.OptionGroup, error)
	GetSortOptions() []models.OptionItem
	GetProgramsMoreInfo(ctx context.Context, values url.Values) (map[string]interface{}, error)
	GetAges() []models.FacetEntry
	GetDaysOfWeek() []models.DayOfWeek
	GetCategories(ctx context.Context) ([]models.OptionGroup, error)
	GetCategoriesTopLevel(ctx context.Context) ([]string, error)
	GetCategoriesType() string
}

// Deps carries everything a backend constructor may need.
type Deps struct {
	Search   SearchEngine
	RefData  *refdata.Loader
	Cache    *cache.Cache
	Settings *settings.FinderSettings
	Logger   logger.Logger
	Timezone string
}

// SearchEngine is the slice of the search index client a backend consumes.
type SearchEngine interface {
	Search(ctx context.Context, index string, query map[string]interface{}) (*EngineResult, error)
	SupportsFacets() bool
}

// EngineResult is the raw outcome of one engine query.
type EngineResult struct {
	Count  int
	Hits   []models.SessionDocument
	Facets models.Facets
}
