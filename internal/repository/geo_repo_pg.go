package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityFilter struct {
	Name       string
	CountryIDs []int64
}

type AirportFilter struct {
	Name    string
	Code    string
	CityIDs []int64
}

type RouteFilter struct {
	SourceCodes      []string
	DestinationCodes []string
}

type GeoRepository interface {
	ListCountries(ctx context.Context, name string, page Page) ([]domain.Country, int, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, country *domain.Country) error
	UpdateCountry(ctx context.Context, country *domain.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	ListCities(ctx context.Context, filter CityFilter, page Page) ([]domain.City, int, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	CreateCity(ctx context.Context, city *domain.City) error
	UpdateCity(ctx context.Context, city *domain.City) error
	DeleteCity(ctx context.Context, id int64) error

	ListAirports(ctx context.Context, filter AirportFilter, page Page) ([]domain.Airport, int, error)
	GetAirport(ctx context.Context, code string) (*domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, code string) error

	ListRoutes(ctx context.Context, filter RouteFilter, page Page) ([]domain.Route, int, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	UpdateRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) error
}

type PGGeoRepository struct {
	pgBase
}

func NewGeoRepository(db *pgxpool.Pool) GeoRepository {
	return &PGGeoRepository{pgBase{db: db}}
}

func (r *PGGeoRepository) ListCountries(ctx context.Context, name string, page Page) ([]domain.Country, int, error) {
	f := &filter{}
	f.contains("c.name", name)

	const from = `FROM countries c`
	total, err := r.count(ctx, from, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, `SELECT c.id, c.name `+from+f.where()+` ORDER BY c.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, 0, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, total, rows.Err()
}

func (r *PGGeoRepository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	var c domain.Country
	if err := r.q(ctx).QueryRow(ctx, `SELECT id, name FROM countries WHERE id=$1`, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, mapReadErr("get country", err)
	}
	return &c, nil
}

func (r *PGGeoRepository) CreateCountry(ctx context.Context, country *domain.Country) error {
	err := r.q(ctx).QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, country.Name).Scan(&country.ID)
	if err != nil {
		return mapWriteErr("create country", err)
	}
	return nil
}

func (r *PGGeoRepository) UpdateCountry(ctx context.Context, country *domain.Country) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE countries SET name=$1 WHERE id=$2`, country.Name, country.ID)
	if err != nil {
		return mapWriteErr("update country", err)
	}
	return expectAffected(tag)
}

// DeleteCountry removes the country; cities, airports, routes and flights
// referencing it go with it through ON DELETE CASCADE.
func (r *PGGeoRepository) DeleteCountry(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM countries WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	return expectAffected(tag)
}

const citySelect = `SELECT ci.id, ci.name, ci.country_id, co.id, co.name
FROM cities ci
JOIN countries co ON co.id = ci.country_id`

func scanCity(row pgx.Row) (domain.City, error) {
	var c domain.City
	var co domain.Country
	if err := row.Scan(&c.ID, &c.Name, &c.CountryID, &co.ID, &co.Name); err != nil {
		return c, err
	}
	c.Country = &co
	return c, nil
}

func (r *PGGeoRepository) ListCities(ctx context.Context, cf CityFilter, page Page) ([]domain.City, int, error) {
	f := &filter{}
	f.contains("ci.name", cf.Name)
	f.anyID("ci.country_id", cf.CountryIDs)

	total, err := r.count(ctx, `FROM cities ci`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, citySelect+f.where()+` ORDER BY ci.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, total, rows.Err()
}

func (r *PGGeoRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	c, err := scanCity(r.q(ctx).QueryRow(ctx, citySelect+` WHERE ci.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get city", err)
	}
	return &c, nil
}

func (r *PGGeoRepository) CreateCity(ctx context.Context, city *domain.City) error {
	err := r.q(ctx).QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`,
		city.Name, city.CountryID).Scan(&city.ID)
	if err != nil {
		return mapWriteErr("create city", err)
	}
	return nil
}

func (r *PGGeoRepository) UpdateCity(ctx context.Context, city *domain.City) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE cities SET name=$1, country_id=$2 WHERE id=$3`, city.Name, city.CountryID, city.ID)
	if err != nil {
		return mapWriteErr("update city", err)
	}
	return expectAffected(tag)
}

func (r *PGGeoRepository) DeleteCity(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM cities WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	return expectAffected(tag)
}

const airportSelect = `SELECT a.code, a.name, a.closest_big_city_id, ci.id, ci.name, ci.country_id
FROM airports a
JOIN cities ci ON ci.id = a.closest_big_city_id`

func scanAirport(row pgx.Row) (domain.Airport, error) {
	var a domain.Airport
	var ci domain.City
	if err := row.Scan(&a.Code, &a.Name, &a.ClosestBigCityID, &ci.ID, &ci.Name, &ci.CountryID); err != nil {
		return a, err
	}
	a.ClosestBigCity = &ci
	return a, nil
}

func (r *PGGeoRepository) ListAirports(ctx context.Context, af AirportFilter, page Page) ([]domain.Airport, int, error) {
	f := &filter{}
	f.contains("a.name", af.Name)
	f.equalFold("a.code", af.Code)
	f.anyID("a.closest_big_city_id", af.CityIDs)

	total, err := r.count(ctx, `FROM airports a`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, airportSelect+f.where()+` ORDER BY a.code`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, total, rows.Err()
}

func (r *PGGeoRepository) GetAirport(ctx context.Context, code string) (*domain.Airport, error) {
	a, err := scanAirport(r.q(ctx).QueryRow(ctx, airportSelect+` WHERE a.code=$1`, strings.ToUpper(code)))
	if err != nil {
		return nil, mapReadErr("get airport", err)
	}
	return &a, nil
}

func (r *PGGeoRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	airport.Code = strings.ToUpper(airport.Code)
	_, err := r.q(ctx).Exec(ctx, `INSERT INTO airports (code, name, closest_big_city_id) VALUES ($1, $2, $3)`,
		airport.Code, airport.Name, airport.ClosestBigCityID)
	if err != nil {
		return mapWriteErr("create airport", err)
	}
	return nil
}

// UpdateAirport never touches the code: it is the lookup key.
func (r *PGGeoRepository) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE airports SET name=$1, closest_big_city_id=$2 WHERE code=$3`,
		airport.Name, airport.ClosestBigCityID, strings.ToUpper(airport.Code))
	if err != nil {
		return mapWriteErr("update airport", err)
	}
	return expectAffected(tag)
}

func (r *PGGeoRepository) DeleteAirport(ctx context.Context, code string) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM airports WHERE code=$1`, strings.ToUpper(code))
	if err != nil {
		return fmt.Errorf("delete airport: %w", err)
	}
	return expectAffected(tag)
}

const routeSelect = `SELECT r.id, r.source_code, r.destination_code, r.distance,
	s.code, s.name, s.closest_big_city_id, sc.id, sc.name, sc.country_id,
	d.code, d.name, d.closest_big_city_id, dc.id, dc.name, dc.country_id
FROM routes r
JOIN airports s ON s.code = r.source_code
JOIN cities sc ON sc.id = s.closest_big_city_id
JOIN airports d ON d.code = r.destination_code
JOIN cities dc ON dc.id = d.closest_big_city_id`

func scanRoute(row pgx.Row) (domain.Route, error) {
	var rt domain.Route
	var src, dst domain.Airport
	var srcCity, dstCity domain.City
	err := row.Scan(&rt.ID, &rt.SourceCode, &rt.DestinationCode, &rt.Distance,
		&src.Code, &src.Name, &src.ClosestBigCityID, &srcCity.ID, &srcCity.Name, &srcCity.CountryID,
		&dst.Code, &dst.Name, &dst.ClosestBigCityID, &dstCity.ID, &dstCity.Name, &dstCity.CountryID)
	if err != nil {
		return rt, err
	}
	src.ClosestBigCity = &srcCity
	dst.ClosestBigCity = &dstCity
	rt.Source = &src
	rt.Destination = &dst
	return rt, nil
}

func (r *PGGeoRepository) ListRoutes(ctx context.Context, rf RouteFilter, page Page) ([]domain.Route, int, error) {
	f := &filter{}
	f.anyCode("r.source_code", rf.SourceCodes)
	f.anyCode("r.destination_code", rf.DestinationCodes)

	total, err := r.count(ctx, `FROM routes r`, f)
	if err != nil {
		return nil, 0, err
	}

	suffix, args := f.window(page)
	rows, err := r.q(ctx).Query(ctx, routeSelect+f.where()+` ORDER BY r.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, rt)
	}
	return routes, total, rows.Err()
}

func (r *PGGeoRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.q(ctx).QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, mapReadErr("get route", err)
	}
	return &rt, nil
}

func (r *PGGeoRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	route.SourceCode = strings.ToUpper(route.SourceCode)
	route.DestinationCode = strings.ToUpper(route.DestinationCode)
	err := r.q(ctx).QueryRow(ctx, `INSERT INTO routes (source_code, destination_code, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceCode, route.DestinationCode, route.Distance).Scan(&route.ID)
	if err != nil {
		return mapWriteErr("create route", err)
	}
	return nil
}

func (r *PGGeoRepository) UpdateRoute(ctx context.Context, route *domain.Route) error {
	route.SourceCode = strings.ToUpper(route.SourceCode)
	route.DestinationCode = strings.ToUpper(route.DestinationCode)
	tag, err := r.q(ctx).Exec(ctx, `UPDATE routes SET source_code=$1, destination_code=$2, distance=$3 WHERE id=$4`,
		route.SourceCode, route.DestinationCode, route.Distance, route.ID)
	if err != nil {
		return mapWriteErr("update route", err)
	}
	return expectAffected(tag)
}

func (r *PGGeoRepository) DeleteRoute(ctx context.Context, id int64) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return expectAffected(tag)
}

var _ GeoRepository = (*PGGeoRepository)(nil)
