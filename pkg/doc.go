// Package pkg holds the public libraries of chanroute, a greedy two-row
// channel router.
//
// # Overview
//
// A channel is a strip between two rows of terminals. Every terminal carries
// a net number and the router connects the terminals of each net with
// horizontal wires on tracks and vertical wires between tracks and rows.
// The pkg directory is organized into these areas:
//
//  1. [channel] - Pins, the router, the vertical constraint graph and the
//     plan checker
//  2. [io] - Pin spec input, geometry output and the JSON plan form
//  3. [render] - SVG drawing plus PNG, PDF and Graphviz conversion
//  4. [pipeline] - Orchestration (parse → route → render) with caching
//  5. [cache], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through chanroute:
//
//	Pin spec (two rows of net numbers)
//	         ↓
//	    [io] package (ReadPinSpec)
//	         ↓
//	    [channel] package (Route → Plan)
//	         ↓
//	    [io] / [render] packages
//	         ↓
//	    Geometry/JSON/SVG/PNG/PDF output
//
// # Quick Start
//
//	ch, err := io.ReadPinSpec(strings.NewReader("1 0 2\n0 1 2\n"))
//	if err != nil {
//	    return err
//	}
//	plan := channel.Route(ch)
//	fmt.Println("tracks:", plan.TrackCount())
//	return io.WriteGeometry(plan, os.Stdout)
//
// # Command-Line Tool
//
// The chanroute binary in cmd/chanroute wraps these packages:
//
//	chanroute pins.txt out.geo
//	chanroute render pins.txt -f svg,png
//	chanroute check pins.txt out.geo
//
// [channel]: github.com/matzehuels/chanroute/pkg/channel
// [io]: github.com/matzehuels/chanroute/pkg/io
// [render]: github.com/matzehuels/chanroute/pkg/render
// [pipeline]: github.com/matzehuels/chanroute/pkg/pipeline
// [cache]: github.com/matzehuels/chanroute/pkg/cache
// [errors]: github.com/matzehuels/chanroute/pkg/errors
// [observability]: github.com/matzehuels/chanroute/pkg/observability
package pkg
