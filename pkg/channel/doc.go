// Package channel implements a greedy two-row channel router.
//
// # Overview
//
// A channel is the routing region between two parallel rows of terminals. Each
// column of the top and bottom row may carry a terminal of some [Net]; terminals
// of the same net must be electrically joined by horizontal wires running on
// tracks inside the channel and vertical wires dropping onto the terminals.
//
// The router in this package is a single-pass greedy heuristic. It never shares
// a track between nets, so it always produces a short-free plan, but it makes
// no attempt to minimise the number of tracks.
//
// # Basic Usage
//
// Build a [Channel] from two equal-length rows and route it:
//
//	ch, err := channel.FromNets([]int{1, 0, 2}, []int{0, 1, 2})
//	if err != nil {
//	    return err // rows of different length
//	}
//	plan := channel.Route(ch)
//	fmt.Println(plan.TrackCount())
//	for _, n := range plan.Nets() {
//	    w := plan.Wires(n)
//	    // w.Horizontal, w.Vertical in creation order
//	}
//
// The zero [Pin] means "no terminal at this column". [FromNets] treats the
// integer 0 as that marker so the text format can keep using it; [New] takes
// explicit pins and can therefore route a net whose identifier is 0.
//
// # Algorithm
//
// Routing runs two sweeps followed by a finalisation step:
//
//  1. Bottom sweep, left to right. The first bottom terminal of a net claims a
//     fresh track and opens a runner, a horizontal wire that is stretched by one
//     column at every later column. Further bottom terminals of the same net
//     drop a vertical stub onto that track.
//  2. Top sweep, right to left. The rightmost top terminal of each net claims a
//     fresh track. A top-only net gets one horizontal wire spanning its top
//     terminals. A net with bottom terminals has its runner closed at a new
//     column to the right of everything used so far, where a vertical wire
//     climbs to the top track and a second horizontal wire runs back to the
//     leftmost top terminal.
//  3. Finalisation. One extra track above all allocated ones is the top rail;
//     every top terminal gets a vertical stub from its net's top track to it.
//
// Tracks are handed out strictly in discovery order across both sweeps, so two
// nets never claim the same track.
//
// # Verification
//
// [Check] re-derives the short-freedom and connectivity guarantees from a
// finished [Plan] instead of trusting the sweep ordering. [Constraints] builds
// the vertical constraint graph of a channel for diagnostics.
//
// # Concurrency
//
// [Route] keeps all in-progress state local to the call, so concurrent calls on
// different channels are safe. A [Plan] is immutable once returned.
package channel
