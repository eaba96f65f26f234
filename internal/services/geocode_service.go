package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/muskanVaswani/sudharsetu-backend/internal/metrics"
	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
)

// This service uses the OpenStreetMap Nominatim API for geocoding.
// Nominatim is a free service with usage policies: requests must carry an
// identifying User-Agent and stay at or below one request per second.
// For heavy use, self-host or switch to a commercial provider.

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// GeocodeService resolves free-text addresses to coordinates and back.
// Every remote failure (network error, non-2xx status, malformed payload,
// zero matches) surfaces as a nil result; the caller owns the user-facing
// error message.
type GeocodeService interface {
	// Forward resolves manually entered address fields to a fully
	// populated location including coordinates and a provider display
	// string. Returns nil when the query is empty or nothing matches.
	Forward(ctx context.Context, partial models.Location) *models.Location
	// Reverse resolves a coordinate pair to a partial location (address
	// fields only). Returns nil on failure or an empty response.
	Reverse(ctx context.Context, lat, lng float64) *models.Location
}

type geocodeService struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewGeocodeService returns a Nominatim-backed adapter. baseURL may be
// empty to use the public instance; userAgent identifies this deployment
// per the provider's usage policy.
func NewGeocodeService(baseURL, userAgent string) GeocodeService {
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}
	return &geocodeService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		// Nominatim usage policy: at most one request per second.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// nominatimAddress is the provider's structured address payload. City
// may arrive under city, town or village depending on the place.
type nominatimAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Amenity     string `json:"amenity"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Postcode    string `json:"postcode"`
}

type nominatimPlace struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

func (s *geocodeService) Forward(ctx context.Context, partial models.Location) *models.Location {
	metrics.GeocodeLookupsTotal.WithLabelValues("forward").Inc()

	// Combine the address parts into a single free-form query for a more
	// robust search.
	var parts []string
	for _, p := range []string{partial.HouseNo, partial.Street, partial.Landmark, partial.City, partial.Pincode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	query := strings.Join(parts, ", ")
	if query == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	var places []nominatimPlace
	if !s.get(ctx, "forward", s.baseURL+"/search?"+params.Encode(), &places) {
		return nil
	}
	if len(places) == 0 {
		return nil
	}

	place := places[0]
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil
	}

	addr := place.Address
	return &models.Location{
		Lat:         lat,
		Lng:         lng,
		HouseNo:     firstNonEmpty(addr.HouseNumber, partial.HouseNo),
		Street:      firstNonEmpty(addr.Road, partial.Street),
		Landmark:    firstNonEmpty(addr.Amenity, partial.Landmark),
		City:        firstNonEmpty(addr.City, addr.Town, addr.Village, partial.City),
		Pincode:     firstNonEmpty(addr.Postcode, partial.Pincode),
		FullAddress: place.DisplayName,
	}
}

func (s *geocodeService) Reverse(ctx context.Context, lat, lng float64) *models.Location {
	metrics.GeocodeLookupsTotal.WithLabelValues("reverse").Inc()

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	var place struct {
		Address *nominatimAddress `json:"address"`
	}
	if !s.get(ctx, "reverse", s.baseURL+"/reverse?"+params.Encode(), &place) {
		return nil
	}
	if place.Address == nil {
		return nil
	}

	addr := place.Address
	return &models.Location{
		HouseNo:  addr.HouseNumber,
		Street:   addr.Road,
		Landmark: addr.Amenity, // best guess for a landmark
		City:     firstNonEmpty(addr.City, addr.Town, addr.Village),
		Pincode:  addr.Postcode,
	}
}

// get performs a rate-limited GET and decodes the JSON body into out.
// Any failure is logged and reported as false.
func (s *geocodeService) get(ctx context.Context, direction, rawURL string, out interface{}) bool {
	if err := s.limiter.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("geocode: %s request failed: %v", direction, err)
		metrics.GeocodeFailuresTotal.WithLabelValues(direction).Inc()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode: %s request returned %s", direction, resp.Status)
		metrics.GeocodeFailuresTotal.WithLabelValues(direction).Inc()
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("geocode: %s response decode failed: %v", direction, err)
		metrics.GeocodeFailuresTotal.WithLabelValues(direction).Inc()
		return false
	}

	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
