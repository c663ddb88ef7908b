// internal/finder/solr/results.go
package solr

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/models"
)

// RowAlterFunc observes and may mutate an assembled row before it is
// returned, keyed by the source document it was built from.
type RowAlterFunc func(row *models.ResultRow, doc models.SessionDocument)

const descriptionLimit = 600

// FormatRow flattens one matched session document into a display row.
// A document missing its location is unusable and yields an error so the
// caller can skip the row instead of failing the whole search.
func FormatRow(
	doc models.SessionDocument,
	locationInfo map[string]models.LocationInfo,
	logID int64,
	loc *time.Location,
) (models.ResultRow, error) {
	location, ok := locationInfo[doc.Location]
	if !ok {
		return models.ResultRow{}, errors.NewRefDataLoadFailedError(
			"row", fmt.Errorf("unknown location %q for session %d", doc.Location, doc.NID))
	}

	var scheduleItems []models.ScheduleItem
	var fullDates, weeks string
	for _, period := range doc.Periods {
		from := time.Unix(period.Start, 0).In(loc)
		to := time.Unix(period.End, 0).In(loc)

		days := make([]string, 0, len(period.Days))
		for _, day := range period.Days {
			days = append(days, shortDay(day))
		}

		scheduleItems = append(scheduleItems, models.ScheduleItem{
			Days: strings.Join(days, ", "),
			Time: from.Format("3:04pm") + "-" + to.Format("3:04pm"),
		})
		fullDates = from.Format("Jan 02") + "-" + to.Format("Jan 02")

		// Not a literal week count: the number of session occurrences, taken
		// as how often the last listed weekday falls inside the period.
		if len(days) > 0 {
			weeks = fmt.Sprintf("%d", CountDaysByName(days[len(days)-1], from, to))
		}
	}

	availabilityStatus := "closed"
	if doc.OnlineRegistered != nil && *doc.OnlineRegistered {
		availabilityStatus = "open"
	}
	availabilityNote := ""
	if availabilityStatus == "closed" {
		availabilityNote = "Registration closed"
	}

	var price []string
	if doc.MemberPrice != "" {
		price = append(price, "$"+doc.MemberPrice+"(member)")
	}
	if doc.NonMemberPrice != "" {
		price = append(price, "$"+doc.NonMemberPrice+"(non-member)")
	}

	var atcInfo models.ATCInfo
	if doc.ActivityType == "group" && len(doc.Periods) > 0 {
		atcInfo = models.ATCInfo{
			TimeStartCalendar: time.Unix(doc.Periods[0].Start, 0).In(loc).Format("2006-01-02 15:04:05"),
			TimeEndCalendar:   time.Unix(doc.Periods[0].End, 0).In(loc).Format("2006-01-02 15:04:05"),
			Timezone:          loc.String(),
		}
	}

	row := models.ResultRow{
		NID:                doc.NID,
		AvailabilityNote:   availabilityNote,
		AvailabilityStatus: availabilityStatus,
		ActivityType:       doc.ActivityType,
		Dates:              fullDates,
		Weeks:              weeks,
		Schedule:           scheduleItems,
		Location:           doc.Location,
		LocationID:         location.NID,
		LocationInfo:       location,
		LogID:              logID,
		Name:               doc.Title,
		Price:              strings.Join(price, ", "),
		Link:               registerLink(logID, doc.RegLink),
		Description:        truncate(doc.Description, descriptionLimit),
		Ages:               ConvertAges([]int{doc.MinAge, doc.MaxAge}),
		Gender:             doc.Gender,
		ProgramID:          doc.CategoryID,
		OfferingID:         "",
		Info:               []string{},
		SpotsAvailable:     doc.Availability,
		Status:             availabilityStatus,
		Note:               availabilityNote,
		LearnMore:          formatLearnMore(doc.LearnMoreURL, doc.LearnMoreText),
		MoreResults:        "",
		MoreResultsType:    "program",
		ProgramName:        doc.Title,
		ATCInfo:            atcInfo,
	}

	if len(scheduleItems) > 0 {
		row.Days = scheduleItems[0].Days
		row.Times = scheduleItems[0].Time
	}

	return row, nil
}

// registerLink builds the redirect-through URL carrying the search-log
// correlation ID and the true registration target.
func registerLink(logID int64, target string) string {
	return fmt.Sprintf("/api/activity-finder/register/%d?url=%s", logID, url.QueryEscape(target))
}

// formatLearnMore renders a learn-more link as an anchor string, plain data
// in and string out, no template pipeline involved.
func formatLearnMore(uri, text string) string {
	if uri == "" {
		return ""
	}
	if text == "" {
		text = uri
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, uri, text)
}

func shortDay(day string) string {
	if day == "" {
		return ""
	}
	day = strings.ToUpper(day[:1]) + day[1:]
	if len(day) > 3 {
		day = day[:3]
	}
	return day
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
