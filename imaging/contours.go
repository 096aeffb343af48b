package imaging

import "image"

// Contour is a connected foreground component: its pixel area and the
// bounding rectangle enclosing it.
type Contour struct {
	Area int
	Rect image.Rectangle
}

// ExternalContours finds 8-connected foreground components and returns one
// contour per component, discarding components whose area falls below
// minArea. Results are ordered by scan position (top-left first).
func ExternalContours(m *Mask, minArea int) []Contour {
	visited := make([]bool, len(m.Pix))
	var contours []Contour

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if visited[idx] || m.Pix[idx] == 0 {
				continue
			}
			c := traceComponent(m, visited, x, y)
			if c.Area >= minArea {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// traceComponent flood-fills one component iteratively, accumulating its
// area and bounding box. Iterative to keep stack depth bounded on large
// page-sized components.
func traceComponent(m *Mask, visited []bool, sx, sy int) Contour {
	minX, minY := sx, sy
	maxX, maxY := sx, sy
	area := 0

	stack := []image.Point{{X: sx, Y: sy}}
	visited[sy*m.W+sx] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
					continue
				}
				nidx := ny*m.W + nx
				if visited[nidx] || m.Pix[nidx] == 0 {
					continue
				}
				visited[nidx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return Contour{
		Area: area,
		Rect: image.Rect(minX, minY, maxX+1, maxY+1),
	}
}
