// internal/finder/solr/facets.go
package solr

import (
	"strings"

	"activity-finder/internal/models"
)

// MapFacets re-keys raw engine facets by stable external IDs and injects the
// static age facet. The input is never mutated, identical inputs produce
// identical output.
func MapFacets(
	raw models.Facets,
	locationInfo map[string]models.LocationInfo,
	categoryInfo map[int64]models.CategoryInfo,
	ageBuckets []models.FacetEntry,
) models.Facets {
	mapped := models.Facets{}

	for name, entries := range raw {
		out := make([]models.FacetEntry, len(entries))
		for i, entry := range entries {
			if entry.Filter != "" {
				entry.Filter = strings.ReplaceAll(entry.Filter, `"`, "")
			}

			switch name {
			case "locations":
				if info, ok := locationInfo[entry.Filter]; ok {
					entry.ID = info.NID
				}
			case "field_activity_category":
				for nid, info := range categoryInfo {
					if info.Title == entry.Filter {
						entry.ID = nid
					}
				}
			}

			out[i] = entry
		}
		mapped[name] = out
	}

	// Static age facet from configuration, counts back-filled from the raw
	// age facet by value equality.
	static := make([]models.FacetEntry, len(ageBuckets))
	for i, bucket := range ageBuckets {
		for _, info := range raw["af_ages_min_max"] {
			if strings.ReplaceAll(info.Filter, `"`, "") == bucket.Value {
				bucket.Count = info.Count
			}
		}
		static[i] = bucket
	}
	mapped["static_age_filter"] = static

	return mapped
}

// GroupLocationCounts fills each location-type group with the summed counts
// of its member locations as they appear in the locations facet.
func GroupLocationCounts(groups []models.OptionGroup, facets models.Facets) []models.OptionGroup {
	out := make([]models.OptionGroup, len(groups))
	for i, group := range groups {
		group.Count = 0
		for _, location := range group.Value {
			for _, entry := range facets["locations"] {
				if formatNID(entry.ID) == location.Value {
					group.Count += entry.Count
				}
			}
		}
		out[i] = group
	}
	return out
}
