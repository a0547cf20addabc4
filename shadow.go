package picture

// Light geometry used to approximate material shadows.
const (
	ShadowLightHeight  = 600.0
	ShadowLightRadius  = 800.0
	ShadowLightOffsetX = -200.0
	ShadowLightOffsetY = -400.0
)

// ShadowOffset returns how far a shadow cast by an object at the given
// elevation is displaced from the object.
func ShadowOffset(elevation float64) Point {
	if elevation == 0 {
		return Point{}
	}
	return Point{
		X: -ShadowLightOffsetX * elevation / ShadowLightHeight,
		Y: -ShadowLightOffsetY * elevation / ShadowLightHeight,
	}
}

// PenumbraBounds returns a conservative bounding box of the shadow cast by
// shape at the given elevation. The estimate is inflated by 20 pixels to
// cover approximation error.
func PenumbraBounds(shape Rect, elevation float64) Rect {
	if elevation == 0 {
		return shape
	}
	tx := (ShadowLightRadius + shape.Width()*0.5) / ShadowLightHeight
	ty := (ShadowLightRadius + shape.Height()*0.5) / ShadowLightHeight
	dx := elevation * tx
	dy := elevation * ty
	b := Rect{
		Left:   shape.Left - dx,
		Top:    shape.Top - dy,
		Right:  shape.Right + dx,
		Bottom: shape.Bottom + dy,
	}
	return b.Shift(ShadowOffset(elevation)).Inflate(20)
}
