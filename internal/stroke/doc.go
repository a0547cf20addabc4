// Package stroke converts flattened polylines into filled polygons that
// cover the stroked outline.
//
// Every segment becomes a quad of the stroke width. Joins and caps are
// separate polygons. All polygons share one orientation, so a nonzero
// accumulating rasterizer such as golang.org/x/image/vector covers their
// union without cancellation where they overlap.
//
// # Line Caps
//
//   - StrokeCapButt: flat end exactly at the endpoint
//   - StrokeCapRound: half disc with radius = width/2
//   - StrokeCapSquare: square extending width/2 beyond the endpoint
//
// # Line Joins
//
//   - StrokeJoinMiter: sharp corner, falling back to bevel beyond MiterLimit
//   - StrokeJoinRound: disc at the vertex
//   - StrokeJoinBevel: straight line across the corner
//
// # Usage
//
//	expander := stroke.NewStrokeExpander(stroke.Stroke{
//	    Width:      2.0,
//	    Cap:        picture.StrokeCapRound,
//	    Join:       picture.StrokeJoinMiter,
//	    MiterLimit: 4.0,
//	})
//	polygons := expander.Expand(path.Flatten(p, m, path.Tolerance))
package stroke
