package channel

import (
	"github.com/matzehuels/chanroute/pkg/errors"
)

// Net identifies an electrical connection. Nets carry no ordering semantics;
// terminals with the same Net must be joined.
type Net int

// Pin is the terminal at one column of one row. The zero value is an empty
// column.
type Pin struct {
	Net     Net
	Present bool
}

// Connect returns a pin attached to net n.
func Connect(n Net) Pin {
	return Pin{Net: n, Present: true}
}

// Channel holds the top and bottom terminal rows. Both rows always have the
// same number of columns.
type Channel struct {
	Top    []Pin
	Bottom []Pin
}

// New builds a channel from explicit pin rows. It fails with
// [errors.ErrCodeRowMismatch] when the rows differ in length.
func New(top, bottom []Pin) (*Channel, error) {
	if err := errors.ValidateRows(len(top), len(bottom)); err != nil {
		return nil, err
	}
	return &Channel{
		Top:    append([]Pin(nil), top...),
		Bottom: append([]Pin(nil), bottom...),
	}, nil
}

// FromNets builds a channel from integer rows where 0 marks an empty column.
func FromNets(top, bottom []int) (*Channel, error) {
	return New(pinsOf(top), pinsOf(bottom))
}

func pinsOf(ids []int) []Pin {
	pins := make([]Pin, len(ids))
	for i, id := range ids {
		if id != 0 {
			pins[i] = Connect(Net(id))
		}
	}
	return pins
}

// Columns returns the channel width in columns.
func (c *Channel) Columns() int { return len(c.Top) }

// Nets returns every net with at least one terminal, in first-seen order:
// top row left to right, then bottom row left to right.
func (c *Channel) Nets() []Net {
	seen := make(map[Net]bool)
	var nets []Net
	for _, row := range [][]Pin{c.Top, c.Bottom} {
		for _, p := range row {
			if p.Present && !seen[p.Net] {
				seen[p.Net] = true
				nets = append(nets, p.Net)
			}
		}
	}
	return nets
}

// PinCount returns the number of present terminals on both rows.
func (c *Channel) PinCount() int {
	n := 0
	for _, row := range [][]Pin{c.Top, c.Bottom} {
		for _, p := range row {
			if p.Present {
				n++
			}
		}
	}
	return n
}

// netSet returns the nets present in a row.
func netSet(row []Pin) map[Net]bool {
	s := make(map[Net]bool)
	for _, p := range row {
		if p.Present {
			s[p.Net] = true
		}
	}
	return s
}
