package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	maxNameLength     = 255
	AirportCodeLength = 3
)

type Country struct {
	ID   int64
	Name string
}

func (c Country) Validate() error {
	errs := fieldErrors{}
	errs.required("name", c.Name)
	errs.maxLen("name", c.Name, maxNameLength)
	return errs.err(ErrInvalidField)
}

type City struct {
	ID        int64
	Name      string
	CountryID int64

	Country *Country
}

func (c City) Validate() error {
	errs := fieldErrors{}
	errs.required("name", c.Name)
	errs.maxLen("name", c.Name, maxNameLength)
	if c.CountryID <= 0 {
		errs.add("country", "this field is required")
	}
	return errs.err(ErrInvalidField)
}

// Airport is identified by its caller-supplied code.
type Airport struct {
	Code             string
	Name             string
	ClosestBigCityID int64

	ClosestBigCity *City
}

func (a Airport) Validate() error {
	errs := fieldErrors{}
	if utf8.RuneCountInString(a.Code) != AirportCodeLength {
		errs.add("code", fmt.Sprintf("ensure this field has exactly %d characters", AirportCodeLength))
	}
	errs.required("name", a.Name)
	errs.maxLen("name", a.Name, maxNameLength)
	if a.ClosestBigCityID <= 0 {
		errs.add("closest_big_city", "this field is required")
	}
	return errs.err(ErrInvalidField)
}

// DetailName renders "CODE (City)"; the city name is omitted when not loaded.
func (a Airport) DetailName() string {
	if a.ClosestBigCity == nil {
		return a.Code
	}
	return fmt.Sprintf("%s (%s)", a.Code, a.ClosestBigCity.Name)
}

func (a Airport) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}

// Route does not require Source != Destination.
type Route struct {
	ID              int64
	SourceCode      string
	DestinationCode string
	Distance        float64

	Source      *Airport
	Destination *Airport
}

func (r Route) Validate() error {
	errs := fieldErrors{}
	if r.SourceCode == "" {
		errs.add("source", "this field is required")
	}
	if r.DestinationCode == "" {
		errs.add("destination", "this field is required")
	}
	if r.Distance < 0 {
		errs.add("distance", "ensure this value is greater than or equal to 0")
	}
	return errs.err(ErrInvalidField)
}

func (r Route) String() string {
	src := Airport{Code: r.SourceCode}
	if r.Source != nil {
		src = *r.Source
	}
	dst := Airport{Code: r.DestinationCode}
	if r.Destination != nil {
		dst = *r.Destination
	}
	return fmt.Sprintf("%s - %s", src.DetailName(), dst.DetailName())
}
