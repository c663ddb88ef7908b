// internal/finder/solr/backend.go
package solr

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"activity-finder/internal/common/metrics"
	"activity-finder/internal/finder/backend"
	"activity-finder/internal/models"
)

// BackendID is the registry key of this implementation.
const BackendID = "solr"

func init() {
	backend.Register(BackendID, NewBackend)
}

var (
	alterMu    sync.RWMutex
	alterFuncs []RowAlterFunc
)

// RegisterRowAlter adds a hook invoked on every assembled result row before
// it is returned.
func RegisterRowAlter(fn RowAlterFunc) {
	alterMu.Lock()
	defer alterMu.Unlock()
	alterFuncs = append(alterFuncs, fn)
}

// Backend searches the full-text index and shapes responses for the finder
// front end.
type Backend struct {
	deps backend.Deps
	loc  *time.Location
}

func NewBackend(deps backend.Deps) (backend.Backend, error) {
	loc := time.UTC
	if deps.Timezone != "" {
		parsed, err := time.LoadLocation(deps.Timezone)
		if err != nil {
			return nil, err
		}
		loc = parsed
	}
	return &Backend{deps: deps, loc: loc}, nil
}

func (b *Backend) RunProgramSearch(ctx context.Context, params models.SearchParameters, logID int64) (*models.SearchResponse, error) {
	locationInfo, err := b.deps.RefData.LocationsInfo(ctx)
	if err != nil {
		return nil, err
	}
	categoryInfo, err := b.deps.RefData.CategoryProgramInfo(ctx)
	if err != nil {
		return nil, err
	}

	withFacets := b.deps.Search.SupportsFacets()
	if !withFacets {
		b.deps.Logger.Info("search engine does not support facets, omitting them", nil)
	}

	query, err := BuildQuery(params, categoryInfo, locationInfo, b.deps.Settings.ExcludeIDs(), withFacets)
	if err != nil {
		return nil, err
	}

	result, err := b.deps.Search.Search(ctx, b.index(), query)
	if err != nil {
		return nil, err
	}

	facets := MapFacets(result.Facets, locationInfo, categoryInfo, b.deps.Settings.AgeBuckets())

	pager := 0
	if params.Page > 0 && result.Count > TotalResultsPerPage {
		pager = params.Page
	}

	table := make([]models.ResultRow, 0, len(result.Hits))
	for _, doc := range result.Hits {
		row, err := FormatRow(doc, locationInfo, logID, b.loc)
		if err != nil {
			b.deps.Logger.Error("skipping result row", map[string]interface{}{
				"nid":   doc.NID,
				"error": err.Error(),
			})
			metrics.ResultRowsSkipped.Inc()
			continue
		}

		alterMu.RLock()
		for _, fn := range alterFuncs {
			fn(&row, doc)
		}
		alterMu.RUnlock()

		table = append(table, row)
	}

	groups, err := b.GetLocations(ctx)
	if err != nil {
		return nil, err
	}

	sortToken := params.Sort
	if sortToken == "" {
		sortToken = DefaultSort
	}

	return &models.SearchResponse{
		Count:            result.Count,
		Facets:           facets,
		Pager:            pager,
		PagerInfo:        ComputePager(result.Count),
		Table:            table,
		GroupedLocations: GroupLocationCounts(groups, facets),
		Sort:             sortToken,
	}, nil
}

// GetLocations groups locations by type for the location picker. Items keep
// the title-sorted order of the lookup table.
func (b *Backend) GetLocations(ctx context.Context) ([]models.OptionGroup, error) {
	locationInfo, err := b.deps.RefData.LocationsInfo(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(locationInfo))
	for title := range locationInfo {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	grouped := map[string][]models.OptionItem{}
	var types []string
	for _, title := range titles {
		info := locationInfo[title]
		if _, ok := grouped[info.Type]; !ok {
			types = append(types, info.Type)
		}
		grouped[info.Type] = append(grouped[info.Type], models.OptionItem{
			Value: formatNID(info.NID),
			Label: title,
		})
	}

	groups := make([]models.OptionGroup, 0, len(types))
	for _, t := range types {
		groups = append(groups, models.OptionGroup{
			Label: ucfirst(t),
			Value: grouped[t],
		})
	}
	return groups, nil
}

func (b *Backend) GetSortOptions() []models.OptionItem {
	return []models.OptionItem{
		{Value: "title__ASC", Label: "Sort by Title (A-Z)"},
		{Value: "title__DESC", Label: "Sort by Title (Z-A)"},
		{Value: "field_session_location__ASC", Label: "Sort by Location (A-Z)"},
		{Value: "field_session_location__DESC", Label: "Sort by Location (Z-A)"},
		{Value: "field_session_class__ASC", Label: "Sort by Activity (A-Z)"},
		{Value: "field_session_class__DESC", Label: "Sort by Activity (Z-A)"},
	}
}

// GetProgramsMoreInfo is a no-op for this backend: every display field is
// already available from the search response. Alternate backends use the
// second round trip for live availability checks.
func (b *Backend) GetProgramsMoreInfo(ctx context.Context, values url.Values) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (b *Backend) GetAges() []models.FacetEntry {
	return b.deps.Settings.AgeBuckets()
}

func (b *Backend) GetDaysOfWeek() []models.DayOfWeek {
	return []models.DayOfWeek{
		{Label: "Mon", SearchValue: "monday", Value: "1"},
		{Label: "Tue", SearchValue: "tuesday", Value: "2"},
		{Label: "Wed", SearchValue: "wednesday", Value: "3"},
		{Label: "Thu", SearchValue: "thursday", Value: "4"},
		{Label: "Fri", SearchValue: "friday", Value: "5"},
		{Label: "Sat", SearchValue: "saturday", Value: "6"},
		{Label: "Sun", SearchValue: "sunday", Value: "7"},
	}
}

// GetCategories groups subcategories under their parent program, leaving out
// the site-configured exclusions.
func (b *Backend) GetCategories(ctx context.Context) ([]models.OptionGroup, error) {
	categoryInfo, err := b.deps.RefData.CategoryProgramInfo(ctx)
	if err != nil {
		return nil, err
	}
	excluded := excludedSet(b.deps.Settings.ExcludeIDs())

	nids := sortedCategoryNIDs(categoryInfo)

	grouped := map[int64]*models.OptionGroup{}
	var programOrder []int64
	for _, nid := range nids {
		if excluded[formatNID(nid)] {
			continue
		}
		info := categoryInfo[nid]
		group, ok := grouped[info.Program.NID]
		if !ok {
			group = &models.OptionGroup{Label: info.Program.Title}
			grouped[info.Program.NID] = group
			programOrder = append(programOrder, info.Program.NID)
		}
		group.Value = append(group.Value, models.OptionItem{
			Value: formatNID(nid),
			Label: info.Title,
		})
	}

	categories := make([]models.OptionGroup, 0, len(programOrder))
	for _, pid := range programOrder {
		categories = append(categories, *grouped[pid])
	}
	return categories, nil
}

// GetCategoriesTopLevel lists the distinct parent program titles, exclusions
// applied.
func (b *Backend) GetCategoriesTopLevel(ctx context.Context) ([]string, error) {
	categoryInfo, err := b.deps.RefData.CategoryProgramInfo(ctx)
	if err != nil {
		return nil, err
	}
	excluded := excludedSet(b.deps.Settings.ExcludeIDs())

	seen := map[int64]bool{}
	var programs []string
	for _, nid := range sortedCategoryNIDs(categoryInfo) {
		if excluded[formatNID(nid)] {
			continue
		}
		info := categoryInfo[nid]
		if seen[info.Program.NID] {
			continue
		}
		seen[info.Program.NID] = true
		programs = append(programs, info.Program.Title)
	}
	return programs, nil
}

func (b *Backend) GetCategoriesType() string {
	return "multiple"
}

func (b *Backend) index() string {
	if b.deps.Settings.Index != "" {
		return b.deps.Settings.Index
	}
	return "default"
}

func sortedCategoryNIDs(categoryInfo map[int64]models.CategoryInfo) []int64 {
	nids := make([]int64, 0, len(categoryInfo))
	for nid := range categoryInfo {
		nids = append(nids, nid)
	}
	sort.Slice(nids, func(i, j int) bool { return nids[i] < nids[j] })
	return nids
}

func excludedSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
