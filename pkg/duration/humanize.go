package duration

import (
	"strconv"
	"time"
)

const day = 24 * time.Hour

type unit struct {
	size     time.Duration
	singular string
	plural   string
}

// largest first
var units = []unit{
	{365 * day, "year", "years"},
	{day, "day", "days"},
	{time.Hour, "hour", "hours"},
	{time.Minute, "minute", "minutes"},
	{time.Second, "second", "seconds"},
}

// Humanize describes a duration relative to now. positive = in the past ("3 days ago"),
// negative = in the future ("in 3 days").
func Humanize(dur time.Duration) string {
	inPast := dur >= 0
	if !inPast {
		dur = -dur
	}

	descr := "0 seconds"
	for _, u := range units {
		// rounded, so 36h is "2 days"
		if num := int((dur + u.size/2) / u.size); num > 0 {
			descr = plural(num, u.singular, u.plural)
			break
		}
	}

	if inPast {
		return descr + " ago"
	} else {
		return "in " + descr
	}
}

// Until describes when a deadline is from now in whole days, which is what matters for expiry
func Until(deadline time.Time, now time.Time) string {
	days := int(deadline.Sub(now) / day)

	switch {
	case days == 0:
		return "today"
	case days > 0:
		return "in " + plural(days, "day", "days")
	default:
		return plural(-days, "day", "days") + " ago"
	}
}

func plural(num int, singular string, plural string) string {
	if num == 1 {
		return strconv.Itoa(num) + " " + singular
	} else {
		return strconv.Itoa(num) + " " + plural
	}
}
