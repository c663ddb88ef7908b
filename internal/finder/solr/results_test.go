package solr

import (
	"testing"
	"time"

	"activity-finder/internal/common/errors"
	"activity-finder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func testSessionDocument() models.SessionDocument {
	// Mondays and Wednesdays, 9:30am-10:15am, June 1 through June 29 2026.
	return models.SessionDocument{
		NID:              301,
		Title:            "Preschool Swim",
		Location:         "Downtown YMCA",
		Description:      "Water confidence for the youngest swimmers.",
		MinAge:           24,
		MaxAge:           0,
		Gender:           "coed",
		Category:         "Swim Lessons",
		CategoryID:       101,
		ActivityType:     "group",
		OnlineRegistered: boolPtr(true),
		RegLink:          "https://register.example.org/301",
		Availability:     "8",
		MemberPrice:      "30",
		NonMemberPrice:   "45",
		LearnMoreURL:     "https://example.org/swim",
		LearnMoreText:    "Learn more",
		Periods: []models.SessionPeriod{
			{
				Days:  []string{"monday", "wednesday"},
				Start: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC).Unix(),
				End:   time.Date(2026, 6, 29, 10, 15, 0, 0, time.UTC).Unix(),
			},
		},
	}
}

func TestFormatRow(t *testing.T) {
	row, err := FormatRow(testSessionDocument(), testLocationInfo(), 5, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, int64(301), row.NID)
	assert.Equal(t, "open", row.AvailabilityStatus)
	assert.Empty(t, row.AvailabilityNote)
	assert.Equal(t, "Jun 01-Jun 29", row.Dates)

	require.Len(t, row.Schedule, 1)
	assert.Equal(t, "Mon, Wed", row.Schedule[0].Days)
	assert.Equal(t, "9:30am-10:15am", row.Schedule[0].Time)
	assert.Equal(t, "Mon, Wed", row.Days)
	assert.Equal(t, "9:30am-10:15am", row.Times)

	// Wednesdays between June 1 (inclusive) and June 29 (exclusive): 4.
	assert.Equal(t, "4", row.Weeks)

	assert.Equal(t, "Downtown YMCA", row.Location)
	assert.Equal(t, int64(201), row.LocationID)
	assert.Equal(t, int64(5), row.LogID)
	assert.Equal(t, "$30(member), $45(non-member)", row.Price)
	assert.Equal(t, "2 years+ years", row.Ages)
	assert.Equal(t, "/api/activity-finder/register/5?url=https%3A%2F%2Fregister.example.org%2F301", row.Link)
	assert.Equal(t, `<a href="https://example.org/swim">Learn more</a>`, row.LearnMore)
	assert.Equal(t, "program", row.MoreResultsType)
	assert.Equal(t, int64(101), row.ProgramID)

	assert.Equal(t, "2026-06-01 09:30:00", row.ATCInfo.TimeStartCalendar)
	assert.Equal(t, "2026-06-29 10:15:00", row.ATCInfo.TimeEndCalendar)
	assert.Equal(t, "UTC", row.ATCInfo.Timezone)
}

func TestFormatRow_ClosedStates(t *testing.T) {
	doc := testSessionDocument()
	doc.OnlineRegistered = boolPtr(false)

	row, err := FormatRow(doc, testLocationInfo(), 5, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "closed", row.AvailabilityStatus)
	assert.Equal(t, "Registration closed", row.AvailabilityNote)
	assert.Equal(t, "Registration closed", row.Note)

	// An absent flag also means closed.
	doc.OnlineRegistered = nil
	row, err = FormatRow(doc, testLocationInfo(), 5, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "closed", row.AvailabilityStatus)
}

func TestFormatRow_UnknownLocation(t *testing.T) {
	doc := testSessionDocument()
	doc.Location = "Nowhere"

	_, err := FormatRow(doc, testLocationInfo(), 5, time.UTC)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRefDataLoadFailed, errors.CodeOf(err))
}

func TestFormatRow_NoCalendarForNonGroup(t *testing.T) {
	doc := testSessionDocument()
	doc.ActivityType = "class"

	row, err := FormatRow(doc, testLocationInfo(), 5, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, row.ATCInfo.TimeStartCalendar)
}

func TestFormatRow_PartialPrice(t *testing.T) {
	doc := testSessionDocument()
	doc.NonMemberPrice = ""

	row, err := FormatRow(doc, testLocationInfo(), 5, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "$30(member)", row.Price)
}

func TestFormatLearnMore(t *testing.T) {
	assert.Empty(t, formatLearnMore("", "ignored"))
	assert.Equal(t, `<a href="https://x.test">https://x.test</a>`, formatLearnMore("https://x.test", ""))
}
