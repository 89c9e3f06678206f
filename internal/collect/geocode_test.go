package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrosight/agrosight/internal/models"
)

func TestGeocoderForward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search") {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		w.Write([]byte(`[{
			"lat": "19.0760",
			"lon": "72.8777",
			"display_name": "Mumbai, Maharashtra, India",
			"importance": 0.85
		}]`))
	}))
	defer srv.Close()

	got, err := NewGeocoder(srv.URL).Resolve(context.Background(), models.LocationQuery{Address: "Mumbai"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Coordinates.Lat != 19.0760 || got.Coordinates.Lon != 72.8777 {
		t.Errorf("coordinates = %+v", got.Coordinates)
	}
	if got.Address != "Mumbai, Maharashtra, India" {
		t.Errorf("address = %q", got.Address)
	}
	if got.Confidence != 0.85 {
		t.Errorf("confidence = %v", got.Confidence)
	}
	if got.AgriculturalZone.Zone == "" || got.SoilClassification.Type == "" {
		t.Error("zone classification missing")
	}
}

func TestGeocoderForward_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewGeocoder(srv.URL).Resolve(context.Background(), models.LocationQuery{Address: "nowhere at all"}); err == nil {
		t.Fatal("empty geocode result accepted")
	}
}

func TestGeocoderCoordinatesWin(t *testing.T) {
	var reverseCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search") {
			t.Error("forward geocode called despite explicit coordinates")
		}
		reverseCalled = true
		w.Write([]byte(`{"display_name": "Wani, Yavatmal, Maharashtra"}`))
	}))
	defer srv.Close()

	q := models.LocationQuery{Coordinates: &models.Coordinates{Lat: 20.05, Lon: 78.95}}
	got, err := NewGeocoder(srv.URL).Resolve(context.Background(), q)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reverseCalled {
		t.Error("reverse geocode not used to fill the address")
	}
	if got.Coordinates.Lat != 20.05 {
		t.Errorf("coordinates = %+v, want the query's", got.Coordinates)
	}
	if got.Address != "Wani, Yavatmal, Maharashtra" {
		t.Errorf("address = %q", got.Address)
	}
}

func TestGeocoderReverseFailureKeepsCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	q := models.LocationQuery{Coordinates: &models.Coordinates{Lat: 20.05, Lon: 78.95}}
	got, err := NewGeocoder(srv.URL).Resolve(context.Background(), q)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Address != "20.0500, 78.9500" {
		t.Errorf("address = %q, want the coordinate string", got.Address)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want the degraded 0.8", got.Confidence)
	}
}

func TestGeocoderEmptyQuery(t *testing.T) {
	if _, err := NewGeocoder("http://unused").Resolve(context.Background(), models.LocationQuery{}); err == nil {
		t.Fatal("empty query accepted")
	}
}

func TestWeatherCollect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "daily=") {
			w.Write([]byte(`{
				"daily": {
					"time": ["2025-07-10"],
					"temperature_2m_max": [36.0],
					"precipitation_sum": [2.0]
				}
			}`))
			return
		}
		w.Write([]byte(`{"current": {"time": "2025-07-10T09:30", "temperature_2m": 29, "relative_humidity_2m": 80}}`))
	}))
	defer srv.Close()

	got, err := NewWeather(NewOpenMeteo(srv.URL)).Collect(context.Background(), testCoords)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got.Current.Temperature != 29 || len(got.Forecast.Time) != 1 {
		t.Errorf("got %+v", got)
	}
	if got.Source != "live" {
		t.Errorf("source = %q", got.Source)
	}
	if got.AgriculturalImpact.Irrigation == "" {
		t.Error("agricultural impact not derived")
	}
}

func TestWeatherCollect_PartialFailureFailsStage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "daily=") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"current": {"time": "2025-07-10T09:30", "temperature_2m": 29}}`))
	}))
	defer srv.Close()

	if _, err := NewWeather(NewOpenMeteo(srv.URL)).Collect(context.Background(), testCoords); err == nil {
		t.Fatal("partial fetch failure did not fail the stage")
	}
}
