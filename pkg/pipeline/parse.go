package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/matzehuels/chanroute/pkg/cache"
	"github.com/matzehuels/chanroute/pkg/channel"
	"github.com/matzehuels/chanroute/pkg/errors"
	pkgio "github.com/matzehuels/chanroute/pkg/io"
	"github.com/matzehuels/chanroute/pkg/observability"
)

// Parse reads a pin spec from r. source names the input in hook events.
func Parse(ctx context.Context, r io.Reader, source string) (*channel.Channel, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	ch, err := pkgio.ReadPinSpec(r)
	pins := 0
	if ch != nil {
		pins = ch.PinCount()
	}
	hooks.OnParseComplete(ctx, source, pins, time.Since(start), err)
	return ch, err
}

// ParseFile reads a pin spec from the file at path.
func ParseFile(ctx context.Context, path string) (*channel.Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open file: %s", path)
	}
	defer f.Close()
	return Parse(ctx, f, path)
}

// pinsHash identifies a channel by its pins. It hashes the JSON form rather
// than the pin spec text so that an explicit net 0 stays distinct from an
// empty column.
func pinsHash(ch *channel.Channel) string {
	data, _ := json.Marshal(ch)
	return cache.Hash(data)
}
