package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

type planJSON struct {
	Columns     int       `json:"columns"`
	ColumnWidth int       `json:"column_width"`
	TrackHeight int       `json:"track_height"`
	TrackCount  int       `json:"track_count"`
	Nets        []netJSON `json:"nets"`
}

type netJSON struct {
	Net int      `json:"net"`
	H   [][3]int `json:"h"`
	V   [][3]int `json:"v"`
}

// MarshalPlan encodes p as compact JSON.
func MarshalPlan(p *channel.Plan) ([]byte, error) {
	data, err := json.Marshal(toJSON(p))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode plan")
	}
	return data, nil
}

// UnmarshalPlan decodes a plan produced by [MarshalPlan] or [WritePlanJSON].
func UnmarshalPlan(data []byte) (*channel.Plan, error) {
	var out planJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	return fromJSON(out)
}

// WritePlanJSON writes p as indented JSON.
func WritePlanJSON(p *channel.Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(p)); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "encode plan")
	}
	return nil
}

// ReadPlanJSON decodes a JSON plan from r. ReadPlanJSON does not close r.
func ReadPlanJSON(r io.Reader) (*channel.Plan, error) {
	var out planJSON
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode plan")
	}
	return fromJSON(out)
}

// ExportPlanJSON writes p to a JSON file at path.
func ExportPlanJSON(p *channel.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	defer f.Close()
	return WritePlanJSON(p, f)
}

func toJSON(p *channel.Plan) planJSON {
	g := p.Geometry()
	out := planJSON{
		Columns:     p.Columns(),
		ColumnWidth: g.ColumnWidth,
		TrackHeight: g.TrackHeight,
		TrackCount:  p.TrackCount(),
		Nets:        make([]netJSON, 0, len(p.Nets())),
	}
	for _, nw := range p.All() {
		nj := netJSON{
			Net: int(nw.Net),
			H:   make([][3]int, len(nw.Horizontal)),
			V:   make([][3]int, len(nw.Vertical)),
		}
		for i, h := range nw.Horizontal {
			nj.H[i] = [3]int{h.LeftX, h.Y, h.RightX}
		}
		for i, v := range nw.Vertical {
			nj.V[i] = [3]int{v.X, v.BottomY, v.TopY}
		}
		out.Nets = append(out.Nets, nj)
	}
	return out
}

func fromJSON(in planJSON) (*channel.Plan, error) {
	geom := channel.Geometry{ColumnWidth: in.ColumnWidth, TrackHeight: in.TrackHeight}
	if err := geom.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "plan geometry")
	}
	nets := make([]channel.NetWires, len(in.Nets))
	for i, nj := range in.Nets {
		n := channel.Net(nj.Net)
		nw := channel.NetWires{Net: n}
		for _, h := range nj.H {
			nw.Horizontal = append(nw.Horizontal, channel.HWire{Net: n, LeftX: h[0], Y: h[1], RightX: h[2]})
		}
		for _, v := range nj.V {
			nw.Vertical = append(nw.Vertical, channel.VWire{Net: n, X: v[0], BottomY: v[1], TopY: v[2]})
		}
		nets[i] = nw
	}
	return channel.NewPlan(in.Columns, in.TrackCount, geom, nets), nil
}
