package texture

// DepthMap is a single-channel float32 depth image. The shadow pipeline
// renders cascade tiles into one wide DepthMap and samples it back during
// shading. Row 0 corresponds to v=0; out-of-range reads clamp to the
// nearest texel.
type DepthMap struct {
	width  int
	height int
	pix    []float32
}

// NewDepthMap creates a depth map cleared to the far plane (1.0).
func NewDepthMap(width, height int) *DepthMap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	d := &DepthMap{
		width:  width,
		height: height,
		pix:    make([]float32, width*height),
	}
	d.Fill(1)
	return d
}

// Width returns the map width in texels.
func (d *DepthMap) Width() int { return d.width }

// Height returns the map height in texels.
func (d *DepthMap) Height() int { return d.height }

// Fill sets every texel to v.
func (d *DepthMap) Fill(v float32) {
	for i := range d.pix {
		d.pix[i] = v
	}
}

// Set writes one texel. Out-of-range coordinates are ignored.
func (d *DepthMap) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.pix[y*d.width+x] = v
}

// At reads one texel, clamping coordinates to the map bounds.
func (d *DepthMap) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= d.width {
		x = d.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= d.height {
		y = d.height - 1
	}
	return d.pix[y*d.width+x]
}

// Pix exposes the raw texel slice, row-major. Shared, not copied.
func (d *DepthMap) Pix() []float32 { return d.pix }
