package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightFilter struct {
	FlightNumber string
	RouteIDs     []int64
	AirplaneIDs  []int64
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	pgBase
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{pgBase{db: db}}
}

const flightSelect = `SELECT f.id, f.flight_number, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	r.id, r.source_code, r.destination_code, r.distance,
	s.code, s.name, s.closest_big_city_id, sc.id, sc.name, sc.country_id,
	d.code, d.name, d.closest_big_city_id, dc.id, dc.name, dc.country_id,
	a.id, a.name, a.row_count, a.seats_in_row, a.airplane_type_id, a.image
FROM flights f
JOIN routes r ON r.id = f.route_id
JOIN airports s ON s.code = r.source_code
JOIN cities sc ON sc.id = s.closest_big_city_id
JOIN airports d ON d.code = r.destination_code
JOIN cities dc ON dc.id = d.closest_big_city_id
JOIN airplanes a ON a.id = f.airplane_id`

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var (
		f                domain.Flight
		rt               domain.Route
		src, dst         domain.Airport
		srcCity, dstCity domain.City
		plane            domain.Airplane
	)
	err := row.Scan(&f.ID, &f.FlightNumber, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&rt.ID, &rt.SourceCode, &rt.DestinationCode, &rt.Distance,
		&src.Code, &src.Name, &src.ClosestBigCityID, &srcCity.ID, &srcCity.Name, &srcCity.CountryID,
		&dst.Code, &dst.Name, &dst.ClosestBigCityID, &dstCity.ID, &dstCity.Name, &dstCity.CountryID,
		&plane.ID, &plane.Name, &plane.Rows, &plane.SeatsInRow, &plane.AirplaneTypeID, &plane.Image)
	if err != nil {
		return f, err
	}
	src.ClosestBigCity = &srcCity
	dst.ClosestBigCity = &dstCity
	rt.Source = &src
	rt.Destination = &dst
	f.Route = &rt
	f.Airplane = &plane
	f.CrewIDs = []int64{}
	f.Crew = []domain.Crew{}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context, ff FlightFilter, page Page) ([]domain.Flight, int, error) {
	f := &filter{}
	f.contains("f.flight_number", ff.FlightNumber)
	f.anyID("f.route_id", ff.RouteIDs)
	f.anyID("f.airplane_id", ff.AirplaneIDs)

	total, err := r.count(ctx, `FROM flights f`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, flightSelect+f.where()+` ORDER BY f.departure_time DESC, f.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		fl, err := scanFlight(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, fl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadCrew(ctx, flights); err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	fl, err := scanFlight(r.q(ctx).QueryRow(ctx, flightSelect+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get flight", err)
	}

	flights := []domain.Flight{fl}
	if err := r.loadCrew(ctx, flights); err != nil {
		return nil, err
	}
	return &flights[0], nil
}

// loadCrew fills Crew and CrewIDs for all flights with a single query.
func (r *PGFlightRepository) loadCrew(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	index := make(map[int64]int, len(flights))
	ids := make([]int64, 0, len(flights))
	for i, f := range flights {
		index[f.ID] = i
		ids = append(ids, f.ID)
	}

	rows, err := r.q(ctx).Query(ctx, `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name, c.position_id, c.photo, p.id, p.name
		FROM flight_crew fc
		JOIN crew c ON c.id = fc.crew_id
		JOIN positions p ON p.id = c.position_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id
	`, ids)
	if err != nil {
		return fmt.Errorf("load flight crew: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flightID int64
		var c domain.Crew
		var p domain.Position
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName, &c.PositionID, &c.Photo, &p.ID, &p.Name); err != nil {
			return fmt.Errorf("scan flight crew: %w", err)
		}
		c.Position = &p

		i := index[flightID]
		flights[i].Crew = append(flights[i].Crew, c)
		flights[i].CrewIDs = append(flights[i].CrewIDs, c.ID)
	}
	return rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		err := r.q(ctx).QueryRow(ctx, `
			INSERT INTO flights (flight_number, route_id, airplane_id, departure_time, arrival_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, flight.FlightNumber, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
		if err != nil {
			return mapWriteErr("create flight", err)
		}
		return r.setCrew(ctx, flight.ID, flight.CrewIDs)
	})
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		tag, err := r.q(ctx).Exec(ctx, `
			UPDATE flights
			SET flight_number=$1, route_id=$2, airplane_id=$3, departure_time=$4, arrival_time=$5
			WHERE id=$6
		`, flight.FlightNumber, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID)
		if err != nil {
			return mapWriteErr("update flight", err)
		}
		if err := expectAffected(tag); err != nil {
			return err
		}

		if _, err := r.q(ctx).Exec(ctx, `DELETE FROM flight_crew WHERE flight_id=$1`, flight.ID); err != nil {
			return fmt.Errorf("clear flight crew: %w", err)
		}
		return r.setCrew(ctx, flight.ID, flight.CrewIDs)
	})
}

func (r *PGFlightRepository) setCrew(ctx context.Context, flightID int64, crewIDs []int64) error {
	if len(crewIDs) == 0 {
		return nil
	}
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO flight_crew (flight_id, crew_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING
	`, flightID, crewIDs)
	if err != nil {
		return mapWriteErr("set flight crew", err)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	return expectAffected(tag)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
