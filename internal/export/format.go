package export

import (
	"fmt"
	"strings"
	"time"

	analytics "github.com/Nosudrum/train-stats/internal/analytics/domain"
)

const kmPerMile = 0.621371

// FormatKm renders a distance as "12 345 km (7 672 mi)".
func FormatKm(km float64) string {
	return fmt.Sprintf("%s km (%s mi)", groupThousands(int(km+0.5)), groupThousands(int(km*kmPerMile+0.5)))
}

// FormatDuration humanizes a span as "N days H hours M minutes",
// omitting zero parts.
func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d day%s", days, plural(days)))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour%s", hours, plural(hours)))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minute%s", minutes, plural(minutes)))
	}
	return strings.Join(parts, " ")
}

// StatsStrings renders the distance and duration lines of a travel
// window, with an "X out of Y" form while the window is ongoing.
func StatsStrings(stats analytics.TravelStats) (string, string) {
	if !stats.Ongoing {
		return FormatKm(stats.TotalDistanceKm), FormatDuration(stats.TotalDuration)
	}
	distance := FormatKm(stats.CurrentDistanceKm) + " out of " + FormatKm(stats.TotalDistanceKm)
	duration := FormatDuration(stats.CurrentDuration) + " out of " + FormatDuration(stats.TotalDuration)
	return distance, duration
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// groupThousands renders an integer with space-separated digit groups.
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
