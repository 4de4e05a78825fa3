package channel

import "github.com/matzehuels/chanroute/pkg/errors"

// Geometry holds the unit spacing of columns and tracks.
type Geometry struct {
	ColumnWidth int `json:"column_width" toml:"column_width"`
	TrackHeight int `json:"track_height" toml:"track_height"`
}

// DefaultGeometry uses unit spacing in both directions.
var DefaultGeometry = Geometry{ColumnWidth: 1, TrackHeight: 1}

// Validate checks that both spacings are positive.
func (g Geometry) Validate() error {
	if err := errors.ValidateDimension("column_width", float64(g.ColumnWidth)); err != nil {
		return err
	}
	return errors.ValidateDimension("track_height", float64(g.TrackHeight))
}

// HWire is a horizontal segment of one net at height Y spanning [LeftX, RightX].
type HWire struct {
	Net    Net
	LeftX  int
	Y      int
	RightX int
}

// VWire is a vertical segment of one net at column X spanning [BottomY, TopY].
type VWire struct {
	Net     Net
	X       int
	BottomY int
	TopY    int
}

// NetWires groups the wires of one net in creation order.
type NetWires struct {
	Net        Net
	Horizontal []HWire
	Vertical   []VWire
}

// Len returns the total number of segments.
func (w NetWires) Len() int { return len(w.Horizontal) + len(w.Vertical) }

func (w NetWires) clone() NetWires {
	return NetWires{
		Net:        w.Net,
		Horizontal: append([]HWire(nil), w.Horizontal...),
		Vertical:   append([]VWire(nil), w.Vertical...),
	}
}
