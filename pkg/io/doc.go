// Package io reads channel descriptions and writes routing results.
//
// # Pin Spec Format
//
// A pin spec is a text file with two lines of whitespace-separated integers,
// one integer per column. Line 1 is the top row, line 2 the bottom row, and 0
// marks a column without a terminal:
//
//	1 0 2
//	0 1 2
//
// Use [ImportPinSpec] to read a file or [ReadPinSpec] for any io.Reader. Both
// rows must have the same number of tokens; anything after line 2 is ignored.
//
// # Geometry Format
//
// A routing result is written as one block per net. Horizontal wires come
// first, then vertical wires, each in the order the router created them:
//
//	.begin 1
//	.H 1 1 4
//	.V 1 0 1
//	.end
//
// An .H line is "left_x y right_x", a .V line is "x bottom_y top_y". Use
// [WriteGeometry] or [ExportGeometry] to produce it and [ReadGeometry] to read
// it back, e.g. to verify a routing produced by another tool.
//
// # JSON Format
//
// [WritePlanJSON] and [ReadPlanJSON] store a complete plan, including the
// channel width, spacing and track count, which the geometry format omits:
//
//	{
//	  "columns": 3,
//	  "column_width": 1,
//	  "track_height": 1,
//	  "track_count": 4,
//	  "nets": [{"net": 1, "h": [[1, 1, 4]], "v": [[1, 0, 1]]}]
//	}
//
// # Errors
//
// Failures carry codes from [errors]: FILE_NOT_FOUND when an input cannot be
// opened, INVALID_INPUT for bad pin tokens, ROW_MISMATCH for rows of unequal
// length, INVALID_FORMAT for malformed geometry or JSON, and WRITE_FAILED
// when output cannot be written.
//
// [errors]: github.com/matzehuels/chanroute/pkg/errors
package io
