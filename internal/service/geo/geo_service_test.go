package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeoRepository struct {
	mock.Mock
}

func (m *MockGeoRepository) ListCountries(ctx context.Context, name string, page repository.Page) ([]domain.Country, int, error) {
	args := m.Called(ctx, name, page)
	return args.Get(0).([]domain.Country), args.Int(1), args.Error(2)
}

func (m *MockGeoRepository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockGeoRepository) CreateCountry(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockGeoRepository) UpdateCountry(ctx context.Context, country *domain.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *MockGeoRepository) DeleteCountry(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGeoRepository) ListCities(ctx context.Context, filter repository.CityFilter, page repository.Page) ([]domain.City, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.City), args.Int(1), args.Error(2)
}

func (m *MockGeoRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockGeoRepository) CreateCity(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockGeoRepository) UpdateCity(ctx context.Context, city *domain.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockGeoRepository) DeleteCity(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGeoRepository) ListAirports(ctx context.Context, filter repository.AirportFilter, page repository.Page) ([]domain.Airport, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Airport), args.Int(1), args.Error(2)
}

func (m *MockGeoRepository) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockGeoRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockGeoRepository) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockGeoRepository) DeleteAirport(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockGeoRepository) ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Route), args.Int(1), args.Error(2)
}

func (m *MockGeoRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockGeoRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockGeoRepository) UpdateRoute(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockGeoRepository) DeleteRoute(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateFlights(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestGeoService_CreateCountry_Invalid(t *testing.T) {
	repo := &MockGeoRepository{}
	service := NewGeoService(repo, nil)

	err := service.CreateCountry(context.Background(), &domain.Country{})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	repo.AssertNotCalled(t, "CreateCountry", mock.Anything, mock.Anything)
}

func TestGeoService_CreateCountry_Duplicate(t *testing.T) {
	repo := &MockGeoRepository{}
	service := NewGeoService(repo, nil)
	ctx := context.Background()
	country := &domain.Country{Name: "Ukraine"}

	repo.On("CreateCountry", ctx, country).Return(domain.ErrAlreadyExists).Once()

	err := service.CreateCountry(ctx, country)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	repo.AssertExpectations(t)
}

func TestGeoService_DeleteCountry_InvalidatesFlights(t *testing.T) {
	repo := &MockGeoRepository{}
	cache := &MockInvalidator{}
	service := NewGeoService(repo, cache)
	ctx := context.Background()

	repo.On("DeleteCountry", ctx, int64(3)).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()

	err := service.DeleteCountry(ctx, 3)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGeoService_DeleteAirport_NotFound(t *testing.T) {
	repo := &MockGeoRepository{}
	cache := &MockInvalidator{}
	service := NewGeoService(repo, cache)
	ctx := context.Background()

	repo.On("DeleteAirport", ctx, "XXX").Return(domain.ErrNotFound).Once()

	err := service.DeleteAirport(ctx, "XXX")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestGeoService_CreateAirport_CodeLength(t *testing.T) {
	repo := &MockGeoRepository{}
	service := NewGeoService(repo, nil)

	err := service.CreateAirport(context.Background(), &domain.Airport{Code: "KBPX", Name: "Boryspil", ClosestBigCityID: 1})

	assert.ErrorIs(t, err, domain.ErrInvalidField)
	repo.AssertNotCalled(t, "CreateAirport", mock.Anything, mock.Anything)
}

func TestGeoService_UpdateRoute(t *testing.T) {
	repo := &MockGeoRepository{}
	cache := &MockInvalidator{}
	service := NewGeoService(repo, cache)
	ctx := context.Background()
	route := &domain.Route{ID: 1, SourceCode: "KBP", DestinationCode: "KBP", Distance: 0}

	repo.On("UpdateRoute", ctx, route).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	require.NoError(t, service.UpdateRoute(ctx, route))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGeoService_ListCities(t *testing.T) {
	repo := &MockGeoRepository{}
	service := NewGeoService(repo, nil)
	ctx := context.Background()
	filter := repository.CityFilter{CountryIDs: []int64{1, 2}}
	page := repository.Page{Limit: 10}

	repo.On("ListCities", ctx, filter, page).Return([]domain.City{{ID: 1, Name: "Kyiv"}}, 1, nil).Once()

	cities, total, err := service.ListCities(ctx, filter, page)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Kyiv", cities[0].Name)
}
