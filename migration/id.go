package migration

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// IDLength is the exact byte length of every migration identifier.
const IDLength = 14

const idTimeLayout = "20060102150405"

var ErrInvalidID = errors.New("invalid migration id")

// ID identifies a migration. IDs are ordered byte-wise, which matches chronological order
// for zero-padded timestamps such as 20220118115519. The zero ID is not valid.
type ID struct {
	raw string
}

func ParseID(raw string) (ID, error) {
	if len(raw) != IDLength {
		return ID{}, fmt.Errorf("%w: \"%s\" is %d bytes long, expected %d", ErrInvalidID, raw, len(raw), IDLength)
	}

	return ID{raw: raw}, nil
}

func MustParseID(raw string) ID {
	id, err := ParseID(raw)
	if err != nil {
		panic(err)
	}

	return id
}

// NewID builds an ID from a point in time, in UTC.
func NewID(t time.Time) ID {
	return ID{raw: t.UTC().Format(idTimeLayout)}
}

func (id ID) String() string {
	return id.raw
}

func (id ID) Compare(other ID) int {
	return strings.Compare(id.raw, other.raw)
}

func (id ID) Less(other ID) bool {
	return id.raw < other.raw
}

func (id ID) IsZero() bool {
	return id.raw == ""
}
