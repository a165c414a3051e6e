// Package core provides the shared value types of the display layer:
// points, styled text fragments, and display-width computation.
//
// A Fragment is the atomic unit of styled text. Its Style field is a
// space-separated list of style tags ("chroma.keyword selection") that a
// theme resolves to concrete colors at paint time. Fragments may carry a
// click handler; handlers are stripped before fragments reach the screen
// painter and only consulted by mouse dispatch.
package core
