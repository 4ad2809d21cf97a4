package domain

import "fmt"

type AirplaneType struct {
	ID   int64
	Name string
}

func (t AirplaneType) Validate() error {
	errs := fieldErrors{}
	errs.required("name", t.Name)
	errs.maxLen("name", t.Name, maxNameLength)
	return errs.err(ErrInvalidField)
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
	// Image is a path relative to the media root, empty when no image was uploaded.
	Image string

	AirplaneType *AirplaneType
}

// Capacity is the number of physical seats.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) Validate() error {
	errs := fieldErrors{}
	errs.required("name", a.Name)
	errs.maxLen("name", a.Name, maxNameLength)
	if a.Rows <= 0 {
		errs.add("rows", "ensure this value is greater than 0")
	}
	if a.SeatsInRow <= 0 {
		errs.add("seats_in_row", "ensure this value is greater than 0")
	}
	if a.AirplaneTypeID <= 0 {
		errs.add("airplane_type", "this field is required")
	}
	return errs.err(ErrInvalidField)
}

func (a Airplane) String() string {
	return fmt.Sprintf("%s Capacity: %d", a.Name, a.Capacity())
}
