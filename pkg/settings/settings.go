// pkg/settings/settings.go
package settings

import (
	"encoding/json"
	"os"
	"strings"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// FinderSettings is the site-level finder configuration: which backend to
// run, the age buckets offered as a static facet, categories to exclude and
// the expander/facet panel layout handed through to the front end.
type FinderSettings struct {
	Backend string `json:"backend"`
	Index   string `json:"index"`

	// Ages holds one "months,label" pair per line.
	Ages string `json:"ages"`

	// Exclude is a comma-joined list of category node IDs.
	Exclude string `json:"exclude"`

	DisableSearchBox  bool                   `json:"disable_search_box"`
	DisableSpotsAvail bool                   `json:"disable_spots_available"`
	ExpanderSections  map[string]interface{} `json:"expander_sections"`

	raw map[string]interface{}
}

// Load reads and validates a settings file.
func Load(path string) (*FinderSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(settingsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, errors.NewInvalidSettingsError(err.Error())
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, errors.NewInvalidSettingsError(strings.Join(details, "; "))
	}

	var s FinderSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewInvalidSettingsError(err.Error())
	}
	if err := json.Unmarshal(data, &s.raw); err != nil {
		return nil, errors.NewInvalidSettingsError(err.Error())
	}

	return &s, nil
}

// AgeBuckets parses the ages setting into facet entries, one per line,
// skipping malformed lines.
func (s *FinderSettings) AgeBuckets() []models.FacetEntry {
	var ages []models.FacetEntry
	for _, row := range strings.Split(s.Ages, "\n") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		parts := strings.SplitN(row, ",", 2)
		if len(parts) != 2 {
			continue
		}
		ages = append(ages, models.FacetEntry{
			Value: strings.TrimSpace(parts[0]),
			Label: strings.TrimSpace(parts[1]),
		})
	}
	return ages
}

// ExcludeIDs returns the configured excluded category node IDs.
func (s *FinderSettings) ExcludeIDs() []string {
	var ids []string
	for _, tok := range strings.Split(s.Exclude, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			ids = append(ids, tok)
		}
	}
	return ids
}

// RawData returns the settings as decoded from the file, attached verbatim
// to search responses as expanderSectionsConfig.
func (s *FinderSettings) RawData() map[string]interface{} {
	return s.raw
}
