package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneFilter struct {
	Name    string
	TypeIDs []int64
}

type FleetRepository interface {
	ListAirplaneTypes(ctx context.Context, name string, page Page) ([]domain.AirplaneType, int, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) error

	ListAirplanes(ctx context.Context, filter AirplaneFilter, page Page) ([]domain.Airplane, int, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	SetAirplaneImage(ctx context.Context, id int64, path string) error
	DeleteAirplane(ctx context.Context, id int64) error
}

type PGFleetRepository struct {
	pgBase
}

func NewFleetRepository(db *pgxpool.Pool) FleetRepository {
	return &PGFleetRepository{pgBase{db: db}}
}

func (r *PGFleetRepository) ListAirplaneTypes(ctx context.Context, name string, page Page) ([]domain.AirplaneType, int, error) {
	f := &filter{}
	f.contains("t.name", name)

	const from = `FROM airplane_types t`
	total, err := r.count(ctx, from, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, `SELECT t.id, t.name `+from+f.where()+` ORDER BY t.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list airplane types: %w", err)
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, 0, fmt.Errorf("scan airplane type: %w", err)
		}
		types = append(types, t)
	}
	return types, total, rows.Err()
}

func (r *PGFleetRepository) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.q(ctx).QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, mapReadErr("get airplane type", err)
	}
	return &t, nil
}

func (r *PGFleetRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if err := r.q(ctx).QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID); err != nil {
		return mapWriteErr("create airplane type", err)
	}
	return nil
}

func (r *PGFleetRepository) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return mapWriteErr("update airplane type", err)
	}
	return expectAffected(tag)
}

func (r *PGFleetRepository) DeleteAirplaneType(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM airplane_types WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete airplane type: %w", err)
	}
	return expectAffected(tag)
}

const airplaneSelect = `SELECT a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id, a.image, t.id, t.name
FROM airplanes a
JOIN airplane_types t ON t.id = a.airplane_type_id`

func scanAirplane(row pgx.Row) (domain.Airplane, error) {
	var a domain.Airplane
	var t domain.AirplaneType
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.Image, &t.ID, &t.Name); err != nil {
		return a, err
	}
	a.AirplaneType = &t
	return a, nil
}

func (r *PGFleetRepository) ListAirplanes(ctx context.Context, af AirplaneFilter, page Page) ([]domain.Airplane, int, error) {
	f := &filter{}
	f.contains("a.name", af.Name)
	f.anyID("a.airplane_type_id", af.TypeIDs)

	total, err := r.count(ctx, `FROM airplanes a`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, airplaneSelect+f.where()+` ORDER BY a.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list airplanes: %w", err)
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan airplane: %w", err)
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, total, rows.Err()
}

func (r *PGFleetRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.q(ctx).QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get airplane", err)
	}
	return &a, nil
}

func (r *PGFleetRepository) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO airplanes (name, row_count, seats_in_row, airplane_type_id, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.Image).Scan(&airplane.ID)
	if err != nil {
		return mapWriteErr("create airplane", err)
	}
	return nil
}

func (r *PGFleetRepository) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE airplanes SET name=$1, row_count=$2, seats_in_row=$3, airplane_type_id=$4
		WHERE id=$5
	`, airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID)
	if err != nil {
		return mapWriteErr("update airplane", err)
	}
	return expectAffected(tag)
}

func (r *PGFleetRepository) SetAirplaneImage(ctx context.Context, id int64, path string) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE airplanes SET image=$1 WHERE id=$2`, path, id)
	if err != nil {
		return fmt.Errorf("set airplane image: %w", err)
	}
	return expectAffected(tag)
}

func (r *PGFleetRepository) DeleteAirplane(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete airplane: %w", err)
	}
	return expectAffected(tag)
}

var _ FleetRepository = (*PGFleetRepository)(nil)
