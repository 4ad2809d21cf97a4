package crew

import (
	"context"
	"io"
	"log"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/repository"
)

type CrewUseCase interface {
	ListPositions(ctx context.Context, name string, page repository.Page) ([]domain.Position, int, error)
	GetPosition(ctx context.Context, id int64) (*domain.Position, error)
	CreatePosition(ctx context.Context, p *domain.Position) error
	UpdatePosition(ctx context.Context, p *domain.Position) error
	DeletePosition(ctx context.Context, id int64) error

	ListCrew(ctx context.Context, filter repository.CrewFilter, page repository.Page) ([]domain.Crew, int, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, c *domain.Crew) error
	UpdateCrew(ctx context.Context, c *domain.Crew) error
	UploadCrewPhoto(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Crew, error)
	DeleteCrew(ctx context.Context, id int64) error
}

type ImageStore interface {
	SaveImage(dir, name, original string, r io.Reader) (string, error)
	Remove(rel string) error
}

type FlightsInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type CrewService struct {
	repo   repository.CrewRepository
	images ImageStore
	cache  FlightsInvalidator
}

func NewCrewService(repo repository.CrewRepository, images ImageStore, cache FlightsInvalidator) *CrewService {
	return &CrewService{repo: repo, images: images, cache: cache}
}

func (s *CrewService) ListPositions(ctx context.Context, name string, page repository.Page) ([]domain.Position, int, error) {
	return s.repo.ListPositions(ctx, name, page)
}

func (s *CrewService) GetPosition(ctx context.Context, id int64) (*domain.Position, error) {
	return s.repo.GetPosition(ctx, id)
}

func (s *CrewService) CreatePosition(ctx context.Context, p *domain.Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.CreatePosition(ctx, p)
}

func (s *CrewService) UpdatePosition(ctx context.Context, p *domain.Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdatePosition(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CrewService) DeletePosition(ctx context.Context, id int64) error {
	if err := s.repo.DeletePosition(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CrewService) ListCrew(ctx context.Context, filter repository.CrewFilter, page repository.Page) ([]domain.Crew, int, error) {
	return s.repo.ListCrew(ctx, filter, page)
}

func (s *CrewService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repo.GetCrew(ctx, id)
}

func (s *CrewService) CreateCrew(ctx context.Context, c *domain.Crew) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.repo.CreateCrew(ctx, c)
}

func (s *CrewService) UpdateCrew(ctx context.Context, c *domain.Crew) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateCrew(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UploadCrewPhoto names the file after the member's full name.
func (s *CrewService) UploadCrewPhoto(ctx context.Context, id int64, filename string, r io.Reader) (*domain.Crew, error) {
	member, err := s.repo.GetCrew(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.images.SaveImage(media.CrewDir, member.FullName(), filename, r)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetCrewPhoto(ctx, id, rel); err != nil {
		_ = s.images.Remove(rel)
		return nil, err
	}

	if member.Photo != "" {
		if err := s.images.Remove(member.Photo); err != nil {
			log.Printf("remove old crew photo %s: %v", member.Photo, err)
		}
	}
	member.Photo = rel
	return member, nil
}

func (s *CrewService) DeleteCrew(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCrew(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CrewService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ CrewUseCase = (*CrewService)(nil)
