package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

// WriteGeometry writes every net of p as a .begin/.end block.
func WriteGeometry(p *channel.Plan, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, nw := range p.All() {
		fmt.Fprintf(bw, ".begin %d\n", nw.Net)
		for _, h := range nw.Horizontal {
			fmt.Fprintf(bw, ".H %d %d %d\n", h.LeftX, h.Y, h.RightX)
		}
		for _, v := range nw.Vertical {
			fmt.Fprintf(bw, ".V %d %d %d\n", v.X, v.BottomY, v.TopY)
		}
		bw.WriteString(".end\n")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write geometry")
	}
	return nil
}

// ExportGeometry writes p to the file at path, replacing it if it exists.
// A failed write may leave a partial file behind.
func ExportGeometry(p *channel.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	if err := WriteGeometry(p, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "close %s", path)
	}
	return nil
}

// ReadGeometry parses the geometry format back into per-net wires, in file
// order. Blank lines are ignored. A net may appear in several blocks; its
// wires are then concatenated.
func ReadGeometry(r io.Reader) ([]channel.NetWires, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var nets []channel.NetWires
	index := make(map[channel.Net]int)
	cur, line := -1, 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case ".begin":
			if cur >= 0 {
				return nil, rowError(line, ".begin inside block of net %d", nets[cur].Net)
			}
			if len(fields) != 2 {
				return nil, rowError(line, ".begin takes one net id")
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, rowError(line, "bad net id %q", fields[1])
			}
			n := channel.Net(id)
			i, ok := index[n]
			if !ok {
				i = len(nets)
				index[n] = i
				nets = append(nets, channel.NetWires{Net: n})
			}
			cur = i
		case ".end":
			if cur < 0 {
				return nil, rowError(line, ".end without .begin")
			}
			cur = -1
		case ".H", ".V":
			if cur < 0 {
				return nil, rowError(line, "%s outside a net block", fields[0])
			}
			a, b, c, err := threeInts(fields)
			if err != nil {
				return nil, rowError(line, "%v", err)
			}
			nw := &nets[cur]
			if fields[0] == ".H" {
				nw.Horizontal = append(nw.Horizontal, channel.HWire{Net: nw.Net, LeftX: a, Y: b, RightX: c})
			} else {
				nw.Vertical = append(nw.Vertical, channel.VWire{Net: nw.Net, X: a, BottomY: b, TopY: c})
			}
		default:
			return nil, rowError(line, "unknown directive %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read geometry")
	}
	if cur >= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unterminated block for net %d", nets[cur].Net)
	}
	return nets, nil
}

// ImportGeometry reads the geometry file at path.
func ImportGeometry(path string) ([]channel.NetWires, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open file: %s", path)
	}
	defer f.Close()
	return ReadGeometry(f)
}

func threeInts(fields []string) (int, int, int, error) {
	if len(fields) != 4 {
		return 0, 0, 0, fmt.Errorf("%s takes three coordinates, got %d", fields[0], len(fields)-1)
	}
	var out [3]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("bad coordinate %q", f)
		}
		out[i] = n
	}
	return out[0], out[1], out[2], nil
}

// rowError annotates a format error with its line number.
func rowError(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: %s", line, fmt.Sprintf(format, args...))
}
