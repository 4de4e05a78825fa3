package io

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
)

// maxLine bounds a single pin spec row.
const maxLine = 16 << 20

var rowNames = [2]string{"top", "bottom"}

// ReadPinSpec decodes a two-line pin spec from r.
//
// ReadPinSpec returns an INVALID_INPUT error if a row is missing or a token
// is not an integer, and a ROW_MISMATCH error if the rows differ in length.
// ReadPinSpec does not close r.
func ReadPinSpec(r io.Reader) (*channel.Channel, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var rows [2][]int
	for i := range rows {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s row", rowNames[i])
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "missing %s row", rowNames[i])
		}
		row, err := parseRow(sc.Text(), rowNames[i])
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return channel.FromNets(rows[0], rows[1])
}

func parseRow(line, name string) ([]int, error) {
	fields := strings.Fields(line)
	row := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s row, column %d: %q is not a net id", name, i, f)
		}
		row[i] = n
	}
	return row, nil
}

// ImportPinSpec reads the pin spec file at path.
//
// A file that cannot be opened yields a FILE_NOT_FOUND error wrapping the
// underlying cause; decoding errors are those of [ReadPinSpec].
func ImportPinSpec(path string) (*channel.Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open file: %s", path)
	}
	defer f.Close()
	return ReadPinSpec(f)
}

// WritePinSpec encodes ch in pin spec format. Empty columns are written as 0,
// so a channel using net 0 explicitly does not survive the round trip.
func WritePinSpec(ch *channel.Channel, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range [][]channel.Pin{ch.Top, ch.Bottom} {
		for i, p := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			id := 0
			if p.Present {
				id = int(p.Net)
			}
			bw.WriteString(strconv.Itoa(id))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write pin spec")
	}
	return nil
}

// FormatPinSpec returns ch in pin spec format.
func FormatPinSpec(ch *channel.Channel) string {
	var sb strings.Builder
	_ = WritePinSpec(ch, &sb)
	return sb.String()
}

