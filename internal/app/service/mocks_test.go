//go:build unit

package service

import (
	"context"

	"github.com/ijalalfrz/flight-agent-tools/internal/app/dto"
	"github.com/ijalalfrz/flight-agent-tools/internal/pkg/amadeus"
	"github.com/stretchr/testify/mock"
)

type MockLocationSearcher struct {
	mock.Mock
}

func (m *MockLocationSearcher) SearchLocations(ctx context.Context, keyword string) (amadeus.LocationsResponse, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).(amadeus.LocationsResponse), args.Error(1)
}

type MockLocationCacher struct {
	mock.Mock
}

func (m *MockLocationCacher) Get(ctx context.Context, key string) ([]dto.LocationCandidate, bool, error) {
	args := m.Called(ctx, key)

	var candidates []dto.LocationCandidate
	if v := args.Get(0); v != nil {
		candidates = v.([]dto.LocationCandidate)
	}

	return candidates, args.Bool(1), args.Error(2)
}

func (m *MockLocationCacher) Set(ctx context.Context, key string, candidates []dto.LocationCandidate) error {
	return m.Called(ctx, key, candidates).Error(0)
}

func (m *MockLocationCacher) Purge(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockFlightOfferSearcher struct {
	mock.Mock
}

func (m *MockFlightOfferSearcher) SearchFlightOffers(ctx context.Context, req amadeus.FlightOffersRequest) (amadeus.FlightOffersResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(amadeus.FlightOffersResponse), args.Error(1)
}
