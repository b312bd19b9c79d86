package core

// Ordering describes how a collection is sorted on a single field.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "desc"
	if ord.Ascending {
		direction = "asc"
	}
	return ord.Field + " " + direction
}
