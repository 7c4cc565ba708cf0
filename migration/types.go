package migration

import "time"

type Direction rune

const (
	Down Direction = 'd'
	Up   Direction = 'u'
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ---

// Migration is a single schema change: a forward script and the script that reverts it.
// Name is informational and never takes part in ordering.
type Migration struct {
	ID   ID
	Name string
	Up   string
	Down string
}

// ---

type Status uint

const (
	Pending Status = iota
	Applied
	Missing
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Applied:
		return "applied"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// ---

// Log is one row of the bookkeeping table of a target.
type Log struct {
	ID        ID
	AppliedAt time.Time
}

// ---

type State struct {
	Migration
	Status    Status
	AppliedAt time.Time
}
