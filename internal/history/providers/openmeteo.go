package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/okrayum/weather-history/internal/history"
)

// CoordinateSource provides stored coordinates for a location. The location
// registry satisfies this; coordinates get there via geocoding when a
// location is registered.
type CoordinateSource interface {
	Coordinates(loc history.Location) (lat, lon float64, ok bool, err error)
}

// OpenMeteoProvider implements history.Provider for Open-Meteo. The API is
// keyless but coordinate-driven, so it only serves locations with stored
// coordinates; others fail the fetch and the remaining providers carry on.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	coords  CoordinateSource
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, coords CoordinateSource) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		coords:  coords,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc history.Location) (history.Reading, error) {
	lat, lon, ok, err := p.coords.Coordinates(loc)
	if err != nil {
		return history.Reading{}, err
	}
	if !ok {
		return history.Reading{}, fmt.Errorf("no coordinates stored for %s", loc.Key())
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current_weather", "true")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return history.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			Time        string  `json:"time"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return history.Reading{}, err
	}

	// Minute resolution, no zone offset; Open-Meteo reports in UTC here.
	ts, err := time.Parse("2006-01-02T15:04", payload.CurrentWeather.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	return history.Reading{
		Source:      p.name,
		Timestamp:   ts,
		Temperature: payload.CurrentWeather.Temperature,
		// Open-Meteo current_weather has limited fields; wind comes in km/h.
		WindSpeed:   payload.CurrentWeather.WindSpeed / 3.6,
		Description: describeWeatherCode(payload.CurrentWeather.WeatherCode),
	}, nil
}

// describeWeatherCode maps Open-Meteo weather codes to the free-text
// descriptions the log stores (simplified).
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code >= 1 && code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
