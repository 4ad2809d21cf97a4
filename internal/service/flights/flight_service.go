package flights

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter, page repository.Page) (*domain.FlightList, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	GetFlights(ctx context.Context, query string) (*domain.FlightList, error)
	SetFlights(ctx context.Context, query string, list domain.FlightList) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter, page repository.Page) (*domain.FlightList, error) {
	key := cacheKey(filter, page)
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	list := domain.FlightList{Flights: flights, Total: total}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, key, list)
	}
	return &list, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

func cacheKey(f repository.FlightFilter, p repository.Page) string {
	return fmt.Sprintf("number=%s;route=%v;airplane=%v;limit=%d;offset=%d",
		f.FlightNumber, f.RouteIDs, f.AirplaneIDs, p.Limit, p.Offset)
}

var _ FlightUseCase = (*FlightService)(nil)
