// Package processor defines the line-transformation pipeline applied by
// BufferControl: each stage receives a line's fragments and the running
// source→display coordinate map, and returns rewritten fragments with
// its own forward and inverse maps. Stages compose; a merged pipeline
// behaves as a single stage whose maps are the composition of every
// stage's maps in application order.
package processor

import (
	"github.com/dshills/tessera/buffer"
	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/search"
)

// ColumnMap maps column indices across one side of a transformation.
// The table covers the columns of the line it was built for; columns
// past the end extrapolate linearly from the last entry, and negative
// columns clamp to zero. A nil ColumnMap is the identity.
type ColumnMap []int

// At maps a single column.
func (m ColumnMap) At(col int) int {
	if m == nil {
		return col
	}
	if col < 0 {
		return 0
	}
	if len(m) == 0 {
		return col
	}
	if col >= len(m) {
		last := len(m) - 1
		return m[last] + (col - last)
	}
	return m[col]
}

// Compose returns a map applying inner first, then outer, materialized
// over inner's table. With either side nil the other is returned.
func Compose(outer, inner ColumnMap) ColumnMap {
	if outer == nil {
		return inner
	}
	if inner == nil {
		return outer
	}
	out := make(ColumnMap, len(inner))
	for i, v := range inner {
		out[i] = outer.At(v)
	}
	return out
}

// IdentityMap builds an explicit identity table for n columns. Stages
// that shift positions usually start from this.
func IdentityMap(n int) ColumnMap {
	m := make(ColumnMap, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// Input is everything a stage may consult when transforming one line.
// The control resolves context-dependent state (search text, focus)
// before running the pipeline, so stages stay free of host lookups.
type Input struct {
	// Document is the snapshot being rendered (possibly a search
	// preview document).
	Document *buffer.Document

	// Lineno is the line being transformed.
	Lineno int

	// SourceToDisplay is the composition of all maps applied so far;
	// stages use it to locate document columns in their input.
	SourceToDisplay ColumnMap

	// Fragments is the line as produced by the previous stage.
	Fragments []core.Fragment

	// Width and Height are the dimensions passed to CreateContent.
	// Height is negative when the content is rendered unconstrained.
	Width, Height int

	// Search is the confirmed search to highlight, nil when none.
	Search *search.State

	// PreviewSearch is the incremental search being typed, nil when
	// none.
	PreviewSearch *search.State

	// Focused reports whether the control being rendered holds focus.
	Focused bool
}

// Transformation is a stage's result for one line.
type Transformation struct {
	Fragments []core.Fragment

	// SourceToDisplay maps input columns to output columns; nil is the
	// identity.
	SourceToDisplay ColumnMap

	// DisplayToSource is the approximate inverse of SourceToDisplay
	// over the line's valid columns.
	DisplayToSource ColumnMap
}

// Processor is one stage of the pipeline.
type Processor interface {
	Apply(in Input) Transformation
}

type merged struct {
	stages []Processor
}

// Merge combines stages into a single processor. Maps compose in
// application order, so DisplayToSource un-applies stages
// outermost-first and the round-trip law holds whenever every stage's
// own maps are proper inverses.
func Merge(stages ...Processor) Processor {
	return merged{stages: stages}
}

func (m merged) Apply(in Input) Transformation {
	fragments := in.Fragments
	running := in.SourceToDisplay
	var forward ColumnMap  // composition of the stages' own maps
	var backward ColumnMap // composition of the stages' inverse maps

	for _, stage := range m.stages {
		next := in
		next.Fragments = fragments
		next.SourceToDisplay = running

		tr := stage.Apply(next)
		fragments = tr.Fragments
		running = Compose(tr.SourceToDisplay, running)
		forward = Compose(tr.SourceToDisplay, forward)
		backward = Compose(backward, tr.DisplayToSource)
	}

	return Transformation{
		Fragments:       fragments,
		SourceToDisplay: forward,
		DisplayToSource: backward,
	}
}
