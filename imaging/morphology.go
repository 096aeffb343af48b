package imaging

// Erode shrinks foreground regions: a pixel survives only if every pixel
// under the kw x kh rectangular structuring element is foreground.
func Erode(m *Mask, kw, kh int) *Mask {
	out := NewMask(m.W, m.H)
	rx, ry := kw/2, kh/2

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if allForeground(m, x-rx, y-ry, x-rx+kw-1, y-ry+kh-1) {
				out.Set(x, y, 255)
			}
		}
	}
	return out
}

// Dilate grows foreground regions: a pixel becomes foreground if any pixel
// under the kw x kh rectangular structuring element is foreground.
func Dilate(m *Mask, kw, kh int) *Mask {
	out := NewMask(m.W, m.H)
	rx, ry := kw/2, kh/2

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if anyForeground(m, x-rx, y-ry, x-rx+kw-1, y-ry+kh-1) {
				out.Set(x, y, 255)
			}
		}
	}
	return out
}

// Open performs morphological opening (erosion then dilation) with a
// kw x kh rectangular element. A long thin element isolates straight ruling
// lines in that direction while discarding strokes too short to survive
// the erosion.
func Open(m *Mask, kw, kh int) *Mask {
	return Dilate(Erode(m, kw, kh), kw, kh)
}

// Combine merges two masks with equal weighting: a pixel is foreground in
// the output when it is foreground in either input.
func Combine(a, b *Mask) *Mask {
	w, h := a.W, a.H
	if b.W < w {
		w = b.W
	}
	if b.H < h {
		h = b.H
	}
	out := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.At(x, y) != 0 || b.At(x, y) != 0 {
				out.Set(x, y, 255)
			}
		}
	}
	return out
}

func allForeground(m *Mask, x0, y0, x1, y1 int) bool {
	// Treat out-of-bounds as background, so foreground cannot extend past
	// the image edge during erosion.
	if x0 < 0 || y0 < 0 || x1 >= m.W || y1 >= m.H {
		return false
	}
	for y := y0; y <= y1; y++ {
		row := m.Pix[y*m.W:]
		for x := x0; x <= x1; x++ {
			if row[x] == 0 {
				return false
			}
		}
	}
	return true
}

func anyForeground(m *Mask, x0, y0, x1, y1 int) bool {
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= m.W {
		x1 = m.W - 1
	}
	if y1 >= m.H {
		y1 = m.H - 1
	}
	for y := y0; y <= y1; y++ {
		row := m.Pix[y*m.W:]
		for x := x0; x <= x1; x++ {
			if row[x] != 0 {
				return true
			}
		}
	}
	return false
}
