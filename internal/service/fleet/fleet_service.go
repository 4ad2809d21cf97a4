package fleet

import (
	"context"
	"io"
	"log"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/repository"
)

type FleetUseCase interface {
	ListAirplaneTypes(ctx context.Context, name string, page repository.Page) ([]domain.AirplaneType, int, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) error

	ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Airplane, error)
	DeleteAirplane(ctx context.Context, id int64) error
}

type ImageStore interface {
	SaveImage(dir, name, original string, r io.Reader) (string, error)
	Remove(rel string) error
}

type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type FleetService struct {
	repo   repository.FleetRepository
	images ImageStore
	cache  FlightsInvalidator
}

func NewFleetService(repo repository.FleetRepository, images ImageStore, cache FlightsInvalidator) *FleetService {
	return &FleetService{repo: repo, images: images, cache: cache}
}

func (s *FleetService) ListAirplaneTypes(ctx context.Context, name string, page repository.Page) ([]domain.AirplaneType, int, error) {
	return s.repo.ListAirplaneTypes(ctx, name, page)
}

func (s *FleetService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.repo.GetAirplaneType(ctx, id)
}

func (s *FleetService) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.CreateAirplaneType(ctx, t)
}

func (s *FleetService) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateAirplaneType(ctx, t)
}

func (s *FleetService) DeleteAirplaneType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAirplaneType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FleetService) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter, page repository.Page) ([]domain.Airplane, int, error) {
	return s.repo.ListAirplanes(ctx, filter, page)
}

func (s *FleetService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repo.GetAirplane(ctx, id)
}

func (s *FleetService) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	return s.repo.CreateAirplane(ctx, airplane)
}

// UpdateAirplane leaves the image untouched; it only changes through UploadAirplaneImage.
func (s *FleetService) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateAirplane(ctx, airplane); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FleetService) UploadAirplaneImage(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Airplane, error) {
	airplane, err := s.repo.GetAirplane(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.images.SaveImage(media.AirplaneDir, airplane.Name, filename, r)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAirplaneImage(ctx, id, rel); err != nil {
		_ = s.images.Remove(rel)
		return nil, err
	}

	if airplane.Image != "" {
		if err := s.images.Remove(airplane.Image); err != nil {
			log.Printf("remove old airplane image %s: %v", airplane.Image, err)
		}
	}
	airplane.Image = rel
	return airplane, nil
}

func (s *FleetService) DeleteAirplane(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAirplane(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FleetService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ FleetUseCase = (*FleetService)(nil)
