package weather

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Place is a geocoded location. The first result of the geocoding provider is used as-is.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DisplayName returns "<name>, <country>" or just the name when the country is unknown.
func (p Place) DisplayName() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

// ForecastResponse mirrors the forecast provider payload. It is returned to clients
// unchanged as the raw weather data.
type ForecastResponse struct {
	Daily *DailyForecast `json:"daily,omitempty"`
}

// DailyForecast holds co-indexed daily series: index i of every slice describes Dates[i].
// Lengths are not validated; see At.
type DailyForecast struct {
	Dates         []string `json:"time"`
	TempMax       Series   `json:"temperature_2m_max"`
	TempMin       Series   `json:"temperature_2m_min"`
	Precipitation Series   `json:"precipitation_sum"`
}

// Series is a sequence of daily values. Missing values (JSON null) are NaN in memory
// and null on the wire.
type Series []float64

// At returns the value at index i, or NaN when the series is shorter than i+1.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// UnmarshalJSON decodes a JSON array of numbers, mapping null entries to NaN.
func (s *Series) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Series, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// MarshalJSON encodes NaN and infinities as null, which encoding/json refuses to do itself.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	buf := make([]byte, 0, len(s)*6+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
	}
	buf = append(buf, ']')
	return buf, nil
}
