package clause

import "fmt"

type errSelectionAlreadySet struct{ id ID }

func (e errSelectionAlreadySet) Error() string {
	return fmt.Sprintf("clause: selection prefix already set on clause %d", e.id)
}

type errInvalidSelection struct {
	id            ID
	count, length int
}

func (e errInvalidSelection) Error() string {
	return fmt.Sprintf("clause: selection count %d out of range [0,%d] for clause %d", e.count, e.length, e.id)
}
