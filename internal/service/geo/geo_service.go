package geo

import (
	"context"
	"log"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type GeoUseCase interface {
	ListCountries(ctx context.Context, name string, page repository.Page) ([]domain.Country, int, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, country *domain.Country) error
	UpdateCountry(ctx context.Context, country *domain.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	ListCities(ctx context.Context, filter repository.CityFilter, page repository.Page) ([]domain.City, int, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	CreateCity(ctx context.Context, city *domain.City) error
	UpdateCity(ctx context.Context, city *domain.City) error
	DeleteCity(ctx context.Context, id int64) error

	ListAirports(ctx context.Context, filter repository.AirportFilter, page repository.Page) ([]domain.Airport, int, error)
	GetAirport(ctx context.Context, code string) (*domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, code string) error

	ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	UpdateRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) error
}

// FlightsInvalidator drops cached flight listings, which embed route and airport data.
type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type GeoService struct {
	repo  repository.GeoRepository
	cache FlightsInvalidator
}

func NewGeoService(repo repository.GeoRepository, cache FlightsInvalidator) *GeoService {
	return &GeoService{repo: repo, cache: cache}
}

func (s *GeoService) ListCountries(ctx context.Context, name string, page repository.Page) ([]domain.Country, int, error) {
	return s.repo.ListCountries(ctx, name, page)
}

func (s *GeoService) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	return s.repo.GetCountry(ctx, id)
}

func (s *GeoService) CreateCountry(ctx context.Context, country *domain.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	return s.repo.CreateCountry(ctx, country)
}

func (s *GeoService) UpdateCountry(ctx context.Context, country *domain.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateCountry(ctx, country)
}

func (s *GeoService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCountry(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) ListCities(ctx context.Context, filter repository.CityFilter, page repository.Page) ([]domain.City, int, error) {
	return s.repo.ListCities(ctx, filter, page)
}

func (s *GeoService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	return s.repo.GetCity(ctx, id)
}

func (s *GeoService) CreateCity(ctx context.Context, city *domain.City) error {
	if err := city.Validate(); err != nil {
		return err
	}
	return s.repo.CreateCity(ctx, city)
}

func (s *GeoService) UpdateCity(ctx context.Context, city *domain.City) error {
	if err := city.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateCity(ctx, city); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) DeleteCity(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCity(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) ListAirports(ctx context.Context, filter repository.AirportFilter, page repository.Page) ([]domain.Airport, int, error) {
	return s.repo.ListAirports(ctx, filter, page)
}

func (s *GeoService) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	return s.repo.GetAirport(ctx, code)
}

func (s *GeoService) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := airport.Validate(); err != nil {
		return err
	}
	return s.repo.CreateAirport(ctx, airport)
}

func (s *GeoService) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	if err := airport.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateAirport(ctx, airport); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) DeleteAirport(ctx context.Context, code string) error {
	if err := s.repo.DeleteAirport(ctx, code); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) ListRoutes(ctx context.Context, filter repository.RouteFilter, page repository.Page) ([]domain.Route, int, error) {
	return s.repo.ListRoutes(ctx, filter, page)
}

func (s *GeoService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetRoute(ctx, id)
}

func (s *GeoService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	return s.repo.CreateRoute(ctx, route)
}

func (s *GeoService) UpdateRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateRoute(ctx, route); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) DeleteRoute(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRoute(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ GeoUseCase = (*GeoService)(nil)
