package weather

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ForecastUnavailable is the reply used when the provider returned no daily data.
const ForecastUnavailable = "Počasí se nepodařilo načíst."

// FormatSummary renders the multi-line forecast report for a place.
// Days are listed in the order received; values missing from a shorter series print as NaN.
func FormatSummary(place Place, f *ForecastResponse) string {
	if f == nil || f.Daily == nil || f.Daily.Dates == nil {
		return ForecastUnavailable
	}

	country := ""
	if place.Country != "" {
		country = ", " + place.Country
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Předpověď na 7 dní pro %s (%.3f, %.3f)%s:",
		place.Name, place.Latitude, place.Longitude, country)

	d := f.Daily
	for i, date := range d.Dates {
		fmt.Fprintf(&b, "\n- %s: max %.0f°C / min %.0f°C, srážky %.1f mm",
			date,
			roundHalfUp(d.TempMax.At(i), 0),
			roundHalfUp(d.TempMin.At(i), 0),
			roundHalfUp(d.Precipitation.At(i), 1))
	}
	return b.String()
}

// roundHalfUp rounds the shortest decimal form of v to places digits, ties away from
// zero, so 2.5 becomes 3 and 0.25 becomes 0.3. The sign is kept for results of zero.
func roundHalfUp(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e15 {
		return v
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) <= places {
		return v
	}

	n, err := strconv.ParseInt(whole+frac[:places], 10, 64)
	if err != nil {
		return v
	}
	if frac[places] >= '5' {
		n++
	}
	return math.Copysign(float64(n)/math.Pow10(places), v)
}
