// internal/models/models.go
package models

// SearchParameters is the normalized form of a finder search request. Every
// field is optional, absence means no filter on that dimension.
type SearchParameters struct {
	Keywords     string
	Ages         []string
	Days         []string
	Times        []string
	Categories   []string
	Locations    []string
	ProgramTypes []string
	Exclude      []string
	Sort         string
	Page         int
}

// LocationInfo describes one location node as the finder presents it.
// Lookups key these by display title, so two locations sharing a title
// silently collapse into one entry.
type LocationInfo struct {
	Type    string      `json:"type"`
	Address string      `json:"address"`
	Days    [][2]string `json:"days"`
	Email   string      `json:"email"`
	NID     int64       `json:"nid"`
	Phone   string      `json:"phone"`
	Title   string      `json:"title"`
}

// ProgramRef is the parent program of a subcategory.
type ProgramRef struct {
	NID   int64  `json:"nid"`
	Title string `json:"title"`
}

// CategoryInfo describes one program subcategory node, keyed by its node ID.
type CategoryInfo struct {
	Title   string     `json:"title"`
	Program ProgramRef `json:"program"`
}

// FacetEntry is one row of a facet breakdown. Engine-produced facets carry
// Filter/Count and gain an ID once re-keyed; the injected static age facet
// carries Value/Label instead of Filter.
type FacetEntry struct {
	Filter string `json:"filter,omitempty"`
	Count  int    `json:"count"`
	ID     int64  `json:"id,omitempty"`
	Value  string `json:"value,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Facets maps filter-field name to its entries.
type Facets map[string][]FacetEntry

// PagerInfo enumerates the 1-based pages of a result set.
type PagerInfo struct {
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
}

// ScheduleItem is one formatted time period of a session.
type ScheduleItem struct {
	Days string `json:"days"`
	Time string `json:"time"`
}

// ATCInfo carries the instants an add-to-calendar widget needs, rendered in
// the site timezone as "2006-01-02 15:04:05".
type ATCInfo struct {
	TimeStartCalendar string `json:"time_start_calendar,omitempty"`
	TimeEndCalendar   string `json:"time_end_calendar,omitempty"`
	Timezone          string `json:"timezone,omitempty"`
}

// ResultRow is one session flattened for display.
type ResultRow struct {
	NID                int64          `json:"nid"`
	AvailabilityNote   string         `json:"availability_note"`
	AvailabilityStatus string         `json:"availability_status"`
	ActivityType       string         `json:"activity_type"`
	Dates              string         `json:"dates"`
	Weeks              string         `json:"weeks"`
	Schedule           []ScheduleItem `json:"schedule"`
	Days               string         `json:"days"`
	Times              string         `json:"times"`
	Location           string         `json:"location"`
	LocationID         int64          `json:"location_id"`
	LocationInfo       LocationInfo   `json:"location_info"`
	LogID              int64          `json:"log_id"`
	Name               string         `json:"name"`
	Price              string         `json:"price"`
	Link               string         `json:"link"`
	Description        string         `json:"description"`
	Ages               string         `json:"ages"`
	Gender             string         `json:"gender"`
	ProgramID          int64          `json:"program_id"`
	OfferingID         string         `json:"offering_id"`
	Info               []string       `json:"info"`
	LocationName       string         `json:"location_name"`
	LocationAddress    string         `json:"location_address"`
	LocationPhone      string         `json:"location_phone"`
	SpotsAvailable     string         `json:"spots_available"`
	Status             string         `json:"status"`
	Note               string         `json:"note"`
	LearnMore          string         `json:"learn_more"`
	MoreResults        string         `json:"more_results"`
	MoreResultsType    string         `json:"more_results_type"`
	ProgramName        string         `json:"program_name"`
	ATCInfo            ATCInfo        `json:"atc_info"`
}

// OptionItem is one selectable entry of a filter list.
type OptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionGroup groups option items under a label, with an optional result
// count filled in by the grouped-location summary.
type OptionGroup struct {
	Label string       `json:"label"`
	Value []OptionItem `json:"value"`
	Count int          `json:"count"`
}

// DayOfWeek is one row of the fixed weekday table. SearchValue is the token
// the search index stores, Value the external 1-7 code.
type DayOfWeek struct {
	Label       string `json:"label"`
	SearchValue string `json:"search_value"`
	Value       string `json:"value"`
}

// SearchResponse is the payload of the search endpoint.
type SearchResponse struct {
	Count                  int                    `json:"count"`
	Facets                 Facets                 `json:"facets"`
	Pager                  int                    `json:"pager"`
	PagerInfo              PagerInfo              `json:"pager_info"`
	Table                  []ResultRow            `json:"table"`
	GroupedLocations       []OptionGroup          `json:"groupedLocations"`
	Sort                   string                 `json:"sort"`
	ExpanderSectionsConfig map[string]interface{} `json:"expanderSectionsConfig,omitempty"`
}

// SessionPeriod is one raw time period attached to a session document.
type SessionPeriod struct {
	Days  []string `json:"days"`
	Start int64    `json:"start"`
	End   int64    `json:"end"`
}

// SessionDocument is a search hit as stored in the index.
type SessionDocument struct {
	NID              int64           `json:"nid"`
	Title            string          `json:"title"`
	Location         string          `json:"location"`
	Description      string          `json:"description"`
	MinAge           int             `json:"min_age"`
	MaxAge           int             `json:"max_age"`
	Gender           string          `json:"gender"`
	Category         string          `json:"category"`
	CategoryID       int64           `json:"category_id"`
	ActivityType     string          `json:"activity_type"`
	OnlineRegistered *bool           `json:"online_registration"`
	RegLink          string          `json:"registration_link"`
	Availability     string          `json:"availability"`
	MemberPrice      string          `json:"member_price"`
	NonMemberPrice   string          `json:"nonmember_price"`
	LearnMoreURL     string          `json:"learn_more_url"`
	LearnMoreText    string          `json:"learn_more_text"`
	Periods          []SessionPeriod `json:"periods"`
}
