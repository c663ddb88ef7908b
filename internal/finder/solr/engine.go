// internal/finder/solr/engine.go
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"activity-finder/internal/common/database"
	"activity-finder/internal/common/errors"
	"activity-finder/internal/common/logger"
	"activity-finder/internal/finder/backend"
	"activity-finder/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Engine executes finder queries against the search index.
type Engine struct {
	es     *database.ElasticsearchClient
	logger logger.Logger
}

func NewEngine(es *database.ElasticsearchClient, log logger.Logger) *Engine {
	return &Engine{
		es:     es,
		logger: log.WithFields(map[string]interface{}{"component": "search-engine"}),
	}
}

// SupportsFacets reports whether aggregation requests may be attached.
func (e *Engine) SupportsFacets() bool {
	return true
}

// Search runs one query and flattens the response into hits and facets.
// Facet filter values come back quoted the way the index reports them, the
// facet post-processor strips the quotes.
func (e *Engine) Search(ctx context.Context, index string, query map[string]interface{}) (*backend.EngineResult, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, e.es.Client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError()
		}
		return nil, errors.NewSearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return nil, errors.NewIndexNotFoundError(index)
		}
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search query failed: %s", res.String()))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.SessionDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
		Aggregations map[string]struct {
			Buckets []struct {
				Key      interface{} `json:"key"`
				DocCount int         `json:"doc_count"`
			} `json:"buckets"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	result := &backend.EngineResult{
		Count:  r.Hits.Total.Value,
		Facets: models.Facets{},
	}
	for _, hit := range r.Hits.Hits {
		result.Hits = append(result.Hits, hit.Source)
	}
	for name, agg := range r.Aggregations {
		entries := make([]models.FacetEntry, 0, len(agg.Buckets))
		for _, bucket := range agg.Buckets {
			entries = append(entries, models.FacetEntry{
				Filter: fmt.Sprintf("%q", fmt.Sprint(bucket.Key)),
				Count:  bucket.DocCount,
			})
		}
		result.Facets[name] = entries
	}

	return result, nil
}
