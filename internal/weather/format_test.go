package weather

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func praguePlace() Place {
	return Place{Name: "Prague", Latitude: 50.088, Longitude: 14.42, Country: "Czechia", Timezone: "Europe/Prague"}
}

func TestFormatSummary(t *testing.T) {
	f := &ForecastResponse{Daily: &DailyForecast{
		Dates:         []string{"2026-10-15", "2026-10-16"},
		TempMax:       Series{14.6, 12.2},
		TempMin:       Series{4.1, 3.7},
		Precipitation: Series{0, 2.34},
	}}

	got := FormatSummary(praguePlace(), f)

	want := "Předpověď na 7 dní pro Prague (50.088, 14.420), Czechia:\n" +
		"- 2026-10-15: max 15°C / min 4°C, srážky 0.0 mm\n" +
		"- 2026-10-16: max 12°C / min 4°C, srážky 2.3 mm"
	assert.Equal(t, want, got)
}

func TestFormatSummary_NoCountry(t *testing.T) {
	place := Place{Name: "Atlantis", Latitude: -1.5, Longitude: 2.25}
	f := &ForecastResponse{Daily: &DailyForecast{Dates: []string{}}}

	assert.Equal(t, "Předpověď na 7 dní pro Atlantis (-1.500, 2.250):", FormatSummary(place, f))
}

func TestFormatSummary_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		f    *ForecastResponse
	}{
		{name: "nil forecast", f: nil},
		{name: "nil daily", f: &ForecastResponse{}},
		{name: "nil dates", f: &ForecastResponse{Daily: &DailyForecast{TempMax: Series{1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ForecastUnavailable, FormatSummary(praguePlace(), tt.f))
		})
	}
}

func TestFormatSummary_ShortSeriesUsesNaN(t *testing.T) {
	f := &ForecastResponse{Daily: &DailyForecast{
		Dates:         []string{"2026-10-15", "2026-10-16"},
		TempMax:       Series{10},
		TempMin:       Series{1, 2},
		Precipitation: Series{0.5, 0.24},
	}}

	lines := strings.Split(FormatSummary(praguePlace(), f), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "- 2026-10-16: max NaN°C / min 2°C, srážky 0.2 mm", lines[2])
}

func TestFormatSummary_Idempotent(t *testing.T) {
	f := &ForecastResponse{Daily: &DailyForecast{
		Dates:         []string{"2026-10-15"},
		TempMax:       Series{20.4},
		TempMin:       Series{11.1},
		Precipitation: Series{1.1},
	}}

	assert.Equal(t, FormatSummary(praguePlace(), f), FormatSummary(praguePlace(), f))
}

func TestFormatSummary_RoundsHalfUp(t *testing.T) {
	f := &ForecastResponse{Daily: &DailyForecast{
		Dates:         []string{"2026-10-15", "2026-10-16", "2026-10-17"},
		TempMax:       Series{12.5, 0.5, 2.4},
		TempMin:       Series{2.5, -0.5, -0.4},
		Precipitation: Series{0.25, 1.05, 0.35},
	}}

	lines := strings.Split(FormatSummary(praguePlace(), f), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "- 2026-10-15: max 13°C / min 3°C, srážky 0.3 mm", lines[1])
	assert.Equal(t, "- 2026-10-16: max 1°C / min -1°C, srážky 1.1 mm", lines[2])
	assert.Equal(t, "- 2026-10-17: max 2°C / min -0°C, srážky 0.4 mm", lines[3])
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{12.5, 0, 13},
		{-12.5, 0, -13},
		{12.49, 0, 12},
		{0.25, 1, 0.3},
		{2.675, 1, 2.7},
		{7, 0, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roundHalfUp(tt.v, tt.places), "roundHalfUp(%v, %d)", tt.v, tt.places)
	}
	assert.True(t, math.IsNaN(roundHalfUp(math.NaN(), 0)))
}

func TestSeries_NullRoundTrip(t *testing.T) {
	var d DailyForecast
	err := json.Unmarshal([]byte(`{"time":["a","b"],"temperature_2m_max":[1.5,null],"precipitation_sum":null}`), &d)
	require.NoError(t, err)

	require.Len(t, d.TempMax, 2)
	assert.Equal(t, 1.5, d.TempMax[0])
	assert.True(t, math.IsNaN(d.TempMax[1]))
	assert.Nil(t, d.Precipitation)
	assert.True(t, math.IsNaN(d.Precipitation.At(0)))

	out, err := json.Marshal(d.TempMax)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,null]`, string(out))
}

func TestPlace_DisplayName(t *testing.T) {
	assert.Equal(t, "Prague, Czechia", praguePlace().DisplayName())
	assert.Equal(t, "Prague", Place{Name: "Prague"}.DisplayName())
}
