// internal/finder/solr/query.go
package solr

import (
	"activity-finder/internal/models"
)

// dayTokens maps the external 1-7 day codes to the tokens stored in the
// index. Unmapped codes are dropped silently.
var dayTokens = map[string]string{
	"1": "monday",
	"2": "tuesday",
	"3": "wednesday",
	"4": "thursday",
	"5": "friday",
	"6": "saturday",
	"7": "sunday",
}

// sortFields maps sort tokens to the indexed fields they order by.
var sortFields = map[string]string{
	"title":                  "title.keyword",
	"field_session_location": "location.keyword",
	"field_session_class":    "category.keyword",
}

// facetAggregations maps response facet names to the document fields their
// counts are built from.
var facetAggregations = map[string]string{
	"locations":               "location.keyword",
	"field_activity_category": "category.keyword",
	"field_category_program":  "program.keyword",
	"days_of_week":            "days",
	"af_parts_of_day":         "parts_of_day",
	"af_ages_min_max":         "ages_min_max",
	"field_session_min_age":   "min_age",
	"field_session_max_age":   "max_age",
}

// BuildQuery translates normalized search parameters into an engine query.
// Category and location IDs are resolved against the pre-loaded lookup
// tables; IDs that resolve to nothing contribute no clause.
func BuildQuery(
	params models.SearchParameters,
	categoryInfo map[int64]models.CategoryInfo,
	locationInfo map[string]models.LocationInfo,
	configExclude []string,
	withFacets bool,
) (map[string]interface{}, error) {
	must := []interface{}{}
	filter := []interface{}{}
	mustNot := []interface{}{}

	// Inclusive OR keyword matching on the title field, everything matches
	// when no keywords were given.
	if params.Keywords != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				"title": map[string]interface{}{
					"query":    params.Keywords,
					"operator": "or",
				},
			},
		})
	}

	// Only published sessions are searchable.
	filter = append(filter, map[string]interface{}{
		"term": map[string]interface{}{"status": 1},
	})

	if len(params.Ages) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"ages_min_max": params.Ages},
		})
	}

	if len(params.Days) > 0 {
		var tokens []string
		for _, code := range params.Days {
			if token, ok := dayTokens[code]; ok {
				tokens = append(tokens, token)
			}
		}
		if len(tokens) > 0 {
			filter = append(filter, map[string]interface{}{
				"terms": map[string]interface{}{"days": tokens},
			})
		}
	}

	if len(params.Times) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"parts_of_day": params.Times},
		})
	}

	programTypes := append([]string{}, params.ProgramTypes...)

	if len(params.Categories) > 0 {
		var titles []string
		for _, id := range params.Categories {
			info, ok := lookupCategory(categoryInfo, id)
			if !ok {
				continue
			}
			titles = append(titles, info.Title)
			if info.Program.Title != "" {
				programTypes = append(programTypes, info.Program.Title)
			}
		}
		if len(titles) > 0 {
			filter = append(filter, map[string]interface{}{
				"terms": map[string]interface{}{"category.keyword": titles},
			})
		}
	} else {
		// Without an explicit category filter, sessions lacking a category
		// reference are orphans and stay hidden.
		filter = append(filter, map[string]interface{}{
			"exists": map[string]interface{}{"field": "category"},
		})
	}

	if len(programTypes) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"program.keyword": programTypes},
		})
	}

	// Request exclusions merge with the site-configured exclusion list, both
	// resolved to titles. Exclusion wins over any matching include.
	excludeIDs := append(append([]string{}, params.Exclude...), configExclude...)
	if len(excludeIDs) > 0 {
		var titles []string
		for _, id := range excludeIDs {
			if info, ok := lookupCategory(categoryInfo, id); ok {
				titles = append(titles, info.Title)
			}
		}
		if len(titles) > 0 {
			mustNot = append(mustNot, map[string]interface{}{
				"terms": map[string]interface{}{"category.keyword": titles},
			})
		}
	}

	if len(params.Locations) > 0 {
		var titles []string
		for title, info := range locationInfo {
			for _, id := range params.Locations {
				if formatNID(info.NID) == id {
					titles = append(titles, title)
				}
			}
		}
		if len(titles) > 0 {
			filter = append(filter, map[string]interface{}{
				"terms": map[string]interface{}{"location.keyword": titles},
			})
		}
	}

	from := 0
	if params.Page > 0 {
		from = (params.Page - 1) * TotalResultsPerPage
	}

	sortToken := params.Sort
	if sortToken == "" {
		sortToken = DefaultSort
	}
	sortField, sortDir, err := ParseSort(sortToken)
	if err != nil {
		return nil, err
	}
	if mapped, ok := sortFields[sortField]; ok {
		sortField = mapped
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":     must,
				"filter":   filter,
				"must_not": mustNot,
			},
		},
		"from": from,
		"size": TotalResultsPerPage,
		"sort": []interface{}{
			map[string]interface{}{sortField: map[string]interface{}{"order": sortDir}},
		},
	}

	if withFacets {
		aggs := map[string]interface{}{}
		for name, field := range facetAggregations {
			aggs[name] = map[string]interface{}{
				"terms": map[string]interface{}{"field": field, "size": 10000},
			}
		}
		query["aggs"] = aggs
	}

	return query, nil
}

func lookupCategory(categoryInfo map[int64]models.CategoryInfo, id string) (models.CategoryInfo, bool) {
	nid, err := parseNID(id)
	if err != nil {
		return models.CategoryInfo{}, false
	}
	info, ok := categoryInfo[nid]
	return info, ok
}
