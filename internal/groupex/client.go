// internal/groupex/client.go
package groupex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	commonhttp "activity-finder/internal/common/http"
	"activity-finder/internal/common/logger"
)

// ScheduleEntry is one class occurrence as the Groupex API reports it.
// Date looks like "Tuesday, May 31, 2016" and Time like "5:05am-6:00am".
type ScheduleEntry struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Category           string `json:"category"`
	Description        string `json:"desc"`
	Instructor         string `json:"instructor"`
	OriginalInstructor string `json:"original_instructor"`
	SubInstructor      string `json:"sub_instructor"`
	Studio             string `json:"studio"`
	Location           string `json:"location"`
	Date               string `json:"date"`
	Time               string `json:"time"`
}

// Client fetches class schedules from the Groupex API.
type Client struct {
	baseURL string
	account string
	http    *commonhttp.Client
	logger  logger.Logger
}

func NewClient(baseURL, account string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		account: account,
		http:    commonhttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "groupex-client"}),
	}
}

// FetchSchedule retrieves the full schedule for the configured account.
func (c *Client) FetchSchedule(ctx context.Context) ([]ScheduleEntry, error) {
	q := url.Values{}
	q.Set("a", c.account)
	q.Set("schedule", "true")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groupex schedule request failed: %s", res.Status)
	}

	var entries []ScheduleEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}
