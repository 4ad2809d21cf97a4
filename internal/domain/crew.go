package domain

type Position struct {
	ID   int64
	Name string
}

func (p Position) Validate() error {
	errs := fieldErrors{}
	errs.required("name", p.Name)
	errs.maxLen("name", p.Name, maxNameLength)
	return errs.err(ErrInvalidField)
}

type Crew struct {
	ID         int64
	FirstName  string
	LastName   string
	PositionID int64
	Photo      string

	Position *Position
}

// FullName joins first and last name with a single space.
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c Crew) Validate() error {
	errs := fieldErrors{}
	errs.required("first_name", c.FirstName)
	errs.maxLen("first_name", c.FirstName, maxNameLength)
	errs.required("last_name", c.LastName)
	errs.maxLen("last_name", c.LastName, maxNameLength)
	if c.PositionID <= 0 {
		errs.add("position", "this field is required")
	}
	return errs.err(ErrInvalidField)
}
