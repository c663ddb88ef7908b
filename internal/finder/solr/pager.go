// internal/finder/solr/pager.go
package solr

import (
	"strings"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/models"
)

// TotalResultsPerPage is the fixed page size of every search response.
const TotalResultsPerPage = 25

const sortDelimiter = "__"

// DefaultSort is applied when a request carries no sort token.
const DefaultSort = "title__ASC"

// ComputePager derives the page list from a result count.
func ComputePager(count int) models.PagerInfo {
	totalPages := (count + TotalResultsPerPage - 1) / TotalResultsPerPage

	pages := []int{}
	for p := 1; p <= totalPages; p++ {
		pages = append(pages, p)
	}

	return models.PagerInfo{TotalPages: totalPages, Pages: pages}
}

// ParseSort splits a "<field>__<direction>" token. A token without the
// delimiter or with an unsupported direction is a client error, not a
// silent fallback.
func ParseSort(token string) (field, direction string, err error) {
	parts := strings.Split(token, sortDelimiter)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", errors.NewMalformedSortError(token)
	}

	switch parts[1] {
	case "ASC":
		direction = "asc"
	case "DESC":
		direction = "desc"
	default:
		return "", "", errors.NewMalformedSortError(token)
	}

	return parts[0], direction, nil
}
