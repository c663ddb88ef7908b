// internal/finder/solr/ageconv.go
package solr

import (
	"strconv"
	"strings"
	"time"
)

// ConvertAges renders a [min_months, max_months] pair as a display label.
//
// Values above 18 are treated as months and divided into years, one decimal
// place unless evenly divisible. The " years" suffix follows a parity rule
// (odd index, or even index with a falsy successor) and an open-ended range
// (second value 0) additionally appends "+ years" to the first. This yields
// labels like "2 years+ years" for open-ended year ranges; the duplication
// is intentional and pinned by fixtures, see TestConvertAges.
func ConvertAges(ages []int) string {
	formatted := make(map[int]string, len(ages))

	for i, v := range ages {
		hasNext := i+1 < len(ages)
		next := 0
		if hasNext {
			next = ages[i+1]
		}

		if v > 18 {
			var label string
			if v%12 != 0 {
				label = strconv.FormatFloat(float64(v)/12, 'f', 1, 64)
			} else {
				label = strconv.Itoa(v / 12)
			}

			if i%2 == 1 || (next == 0 && i%2 == 0) {
				label += " years"
			}
			if hasNext && next == 0 {
				label += "+ years"
			}

			formatted[i] = label
			continue
		}

		if v != 0 {
			unit := " months"
			if v == 1 {
				unit = " month"
			}
			label := strconv.Itoa(v) + unit
			if hasNext && next == 0 {
				label += " + "
			}
			formatted[i] = label
			continue
		}

		// Zero lower bound is shown only against a non-zero upper bound.
		if hasNext && next != 0 {
			formatted[i] = "0"
		}
	}

	var parts []string
	for i := range ages {
		if label, ok := formatted[i]; ok {
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, " - ")
}

// CountDaysByName counts occurrences of a weekday within [start, end). The
// day name is matched on its first three letters, so "monday" and "Mon"
// are equivalent.
func CountDaysByName(dayName string, start, end time.Time) int {
	if len(dayName) < 3 {
		return 0
	}
	want := strings.ToLower(dayName[:3])
	want = strings.ToUpper(want[:1]) + want[1:]

	count := 0
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if day.Format("Mon") == want {
			count++
		}
	}
	return count
}
