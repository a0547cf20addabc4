// Package filter implements coverage-mask filters for the bitmap backend:
// separable Gaussian blur, the blur styles of picture.MaskFilter and
// offset shadows.
//
// Masks are *image.Alpha values covering the whole target surface. Pixels
// outside a mask count as zero coverage.
package filter
