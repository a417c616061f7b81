// Package canvas defines the spatial model for template-driven canvases.
//
// A canvas is a durable instance of a [Template]: a named layout made of
// rectangular [Zone] regions (SWOT quadrants, business-model boxes, kanban
// columns). Content items are placed on a canvas as [Node] values, either
// manually or through the deterministic auto-placement algorithm in
// [AutoPlace].
//
// # Coordinate Space
//
// All positions and sizes are expressed in layout units of the template's
// own coordinate space. The projection into a terminal viewport happens in
// package view; nothing in this package depends on screen geometry.
//
// # Templates
//
// The template catalog is a static, versioned list compiled into the binary.
// Adding or removing templates is a deployment-time change. [Get] and [List]
// return deep copies, so callers can never mutate the catalog through a
// returned value.
package canvas
