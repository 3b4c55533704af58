package sustainability

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/integrations/worldbank"
)

const cacheTTL = 24 * time.Hour

// Payload is the aggregated external dataset served by the global
// sustainability endpoint.
type Payload struct {
	CO2PerCapita    []worldbank.Point `json:"co2_per_capita"`
	RenewableShare  []worldbank.Point `json:"renewable_share"`
	UrbanPopulation []worldbank.Point `json:"urban_population"`
	CountrySnapshot []worldbank.Point `json:"country_snapshot"`
	FetchedAt       time.Time         `json:"fetched_at"`
}

// Service caches the last successful fetch for the TTL. Concurrent cache
// misses are collapsed into a single upstream fetch.
type Service struct {
	client *worldbank.Client

	mu        sync.Mutex
	data      *Payload
	fetchedAt time.Time

	group singleflight.Group
	now   func() time.Time
}

func NewService(client *worldbank.Client) *Service {
	return &Service{client: client, now: time.Now}
}

func (s *Service) Get(ctx context.Context) (*Payload, error) {
	s.mu.Lock()
	if s.data != nil && s.now().Sub(s.fetchedAt) < cacheTTL {
		data := s.data
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("global", func() (interface{}, error) {
		payload, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.data = payload
		s.fetchedAt = s.now()
		s.mu.Unlock()
		return payload, nil
	})
	if err != nil {
		// Serve the stale copy if one exists rather than failing the request.
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.data != nil {
			return s.data, nil
		}
		return nil, err
	}
	return v.(*Payload), nil
}

func (s *Service) fetch(ctx context.Context) (*Payload, error) {
	currentYear := s.now().Year()
	fromYear := currentYear - 20

	co2, err := s.client.FetchIndicator(ctx, "WLD", worldbank.IndicatorCO2PerCapita, fromYear, currentYear)
	if err != nil {
		return nil, err
	}
	renewables, err := s.client.FetchIndicator(ctx, "WLD", worldbank.IndicatorRenewables, fromYear, currentYear)
	if err != nil {
		return nil, err
	}
	urban, err := s.client.FetchIndicator(ctx, "WLD", worldbank.IndicatorUrbanPop, fromYear, currentYear)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.client.FetchIndicator(ctx, "all", worldbank.IndicatorCO2PerCapita, currentYear-2, currentYear)
	if err != nil {
		return nil, err
	}

	return &Payload{
		CO2PerCapita:    co2,
		RenewableShare:  renewables,
		UrbanPopulation: urban,
		CountrySnapshot: snapshot,
		FetchedAt:       s.now(),
	}, nil
}
