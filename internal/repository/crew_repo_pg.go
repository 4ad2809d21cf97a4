package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewFilter struct {
	FirstName   string
	LastName    string
	PositionIDs []int64
}

type CrewRepository interface {
	ListPositions(ctx context.Context, name string, page Page) ([]domain.Position, int, error)
	GetPosition(ctx context.Context, id int64) (*domain.Position, error)
	CreatePosition(ctx context.Context, p *domain.Position) error
	UpdatePosition(ctx context.Context, p *domain.Position) error
	DeletePosition(ctx context.Context, id int64) error

	ListCrew(ctx context.Context, filter CrewFilter, page Page) ([]domain.Crew, int, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, c *domain.Crew) error
	UpdateCrew(ctx context.Context, c *domain.Crew) error
	SetCrewPhoto(ctx context.Context, id int64, path string) error
	DeleteCrew(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	pgBase
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{pgBase{db: db}}
}

func (r *PGCrewRepository) ListPositions(ctx context.Context, name string, page Page) ([]domain.Position, int, error) {
	f := &filter{}
	f.contains("p.name", name)

	const from = `FROM positions p`
	total, err := r.count(ctx, from, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, `SELECT p.id, p.name `+from+f.where()+` ORDER BY p.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		var p domain.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, 0, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, total, rows.Err()
}

func (r *PGCrewRepository) GetPosition(ctx context.Context, id int64) (*domain.Position, error) {
	var p domain.Position
	if err := r.q(ctx).QueryRow(ctx, `SELECT id, name FROM positions WHERE id=$1`, id).Scan(&p.ID, &p.Name); err != nil {
		return nil, mapReadErr("get position", err)
	}
	return &p, nil
}

func (r *PGCrewRepository) CreatePosition(ctx context.Context, p *domain.Position) error {
	if err := r.q(ctx).QueryRow(ctx, `INSERT INTO positions (name) VALUES ($1) RETURNING id`, p.Name).Scan(&p.ID); err != nil {
		return mapWriteErr("create position", err)
	}
	return nil
}

func (r *PGCrewRepository) UpdatePosition(ctx context.Context, p *domain.Position) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE positions SET name=$1 WHERE id=$2`, p.Name, p.ID)
	if err != nil {
		return mapWriteErr("update position", err)
	}
	return expectAffected(tag)
}

func (r *PGCrewRepository) DeletePosition(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM positions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return expectAffected(tag)
}

const crewSelect = `SELECT c.id, c.first_name, c.last_name, c.position_id, c.photo, p.id, p.name
FROM crew c
JOIN positions p ON p.id = c.position_id`

func scanCrew(row pgx.Row) (domain.Crew, error) {
	var c domain.Crew
	var p domain.Position
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.PositionID, &c.Photo, &p.ID, &p.Name); err != nil {
		return c, err
	}
	c.Position = &p
	return c, nil
}

func (r *PGCrewRepository) ListCrew(ctx context.Context, cf CrewFilter, page Page) ([]domain.Crew, int, error) {
	f := &filter{}
	f.contains("c.first_name", cf.FirstName)
	f.contains("c.last_name", cf.LastName)
	f.anyID("c.position_id", cf.PositionIDs)

	total, err := r.count(ctx, `FROM crew c`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, crewSelect+f.where()+` ORDER BY c.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list crew: %w", err)
	}
	defer rows.Close()

	crew := make([]domain.Crew, 0)
	for rows.Next() {
		c, err := scanCrew(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan crew: %w", err)
		}
		crew = append(crew, c)
	}
	return crew, total, rows.Err()
}

func (r *PGCrewRepository) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	c, err := scanCrew(r.q(ctx).QueryRow(ctx, crewSelect+` WHERE c.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get crew", err)
	}
	return &c, nil
}

func (r *PGCrewRepository) CreateCrew(ctx context.Context, c *domain.Crew) error {
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO crew (first_name, last_name, position_id, photo)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.FirstName, c.LastName, c.PositionID, c.Photo).Scan(&c.ID)
	if err != nil {
		return mapWriteErr("create crew", err)
	}
	return nil
}

func (r *PGCrewRepository) UpdateCrew(ctx context.Context, c *domain.Crew) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE crew SET first_name=$1, last_name=$2, position_id=$3 WHERE id=$4`,
		c.FirstName, c.LastName, c.PositionID, c.ID)
	if err != nil {
		return mapWriteErr("update crew", err)
	}
	return expectAffected(tag)
}

func (r *PGCrewRepository) SetCrewPhoto(ctx context.Context, id int64, path string) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE crew SET photo=$1 WHERE id=$2`, path, id)
	if err != nil {
		return fmt.Errorf("set crew photo: %w", err)
	}
	return expectAffected(tag)
}

func (r *PGCrewRepository) DeleteCrew(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM crew WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete crew: %w", err)
	}
	return expectAffected(tag)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
