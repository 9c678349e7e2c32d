package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/forecast-report/internal/weather"
	"github.com/sony/gobreaker"
)

// forecastCount asks for the full 5-day horizon: 8 three-hour slots per day.
const forecastCount = 40

// OpenWeatherProvider implements weather.ForecastProvider against the
// OpenWeatherMap 5-day/3-hour forecast endpoint.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider using the given shared HTTP
// client and API key.
func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// forecastPayload mirrors the slice of the OpenWeatherMap response we use.
// The rain/snow groups are frequently absent; their zero values stand for
// "no precipitation", not for missing data.
type forecastPayload struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Rain struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Snow struct {
			ThreeH float64 `json:"3h"`
		} `json:"snow"`
	} `json:"list"`
}

// FetchForecast fetches the 5-day/3-hour forecast for loc. Samples are
// returned in payload order, which the API guarantees to be chronological.
// A payload without usable entries is an error, never a partial result.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.ForecastResult, error) {
	if p.apiKey == "" {
		return weather.ForecastResult{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("cnt", fmt.Sprintf("%d", forecastCount))

		q := loc.City
		if loc.Country != "" {
			q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
		}
		values.Set("q", q)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ForecastResult{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastResult{}, fmt.Errorf("decode forecast payload: %w", err)
	}

	if payload.City.Name == "" {
		return weather.ForecastResult{}, fmt.Errorf("forecast payload missing city name")
	}
	if len(payload.List) == 0 {
		return weather.ForecastResult{}, fmt.Errorf("forecast payload contains no entries")
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for i, item := range payload.List {
		if len(item.Weather) == 0 {
			return weather.ForecastResult{}, fmt.Errorf("forecast entry %d missing weather category", i)
		}

		samples = append(samples, weather.ForecastSample{
			Timestamp:    time.Unix(item.Dt, 0),
			TemperatureC: item.Main.Temp,
			Category:     item.Weather[0].Main,
			RainMM:       item.Rain.ThreeH,
			SnowMM:       item.Snow.ThreeH,
			HumidityPct:  item.Main.Humidity,
		})
	}

	return weather.ForecastResult{
		LocationName: payload.City.Name,
		Samples:      samples,
	}, nil
}
