// Package imaging supplies the raster primitives used by table region
// detection: image decoding, grayscale conversion, denoising, adaptive
// thresholding, directional morphology, and external contour extraction.
//
// Masks are binary rasters where 255 marks foreground (ink) and 0 marks
// background. The package has no dependency on the rest of the pipeline.
package imaging

import (
	"fmt"
	"image"
	"io"

	// Register decoders for the supported raster formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Mask is a binary or grayscale raster with one byte per pixel.
type Mask struct {
	W, H int
	Pix  []uint8
}

// NewMask allocates a zeroed mask of the given dimensions.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the pixel value at (x, y). Out-of-bounds reads return 0.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.Pix[y*m.W+x]
}

// Set writes the pixel value at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.W+x] = v
}

// Decode reads an image in any registered format (PNG, JPEG, BMP, TIFF).
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	_ = format
	return img, nil
}

// Grayscale converts an image to an 8-bit luminance mask.
func Grayscale(img image.Image) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Rec. 601 luma, on 16-bit channel values.
			lum := (299*r + 587*g + 114*b) / 1000
			m.Set(x-bounds.Min.X, y-bounds.Min.Y, uint8(lum>>8))
		}
	}
	return m
}

// MedianBlur3 applies a 3x3 median filter, removing salt-and-pepper noise
// before thresholding. Border pixels are copied unchanged.
func MedianBlur3(m *Mask) *Mask {
	out := NewMask(m.W, m.H)
	copy(out.Pix, m.Pix)

	var window [9]uint8
	for y := 1; y < m.H-1; y++ {
		for x := 1; x < m.W-1; x++ {
			i := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					window[i] = m.At(x+dx, y+dy)
					i++
				}
			}
			out.Set(x, y, median9(window))
		}
	}
	return out
}

// median9 returns the median of 9 values using a partial insertion sort.
func median9(w [9]uint8) uint8 {
	for i := 1; i < 9; i++ {
		v := w[i]
		j := i - 1
		for j >= 0 && w[j] > v {
			w[j+1] = w[j]
			j--
		}
		w[j+1] = v
	}
	return w[4]
}

// AdaptiveThreshold binarizes a grayscale mask. A pixel becomes foreground
// (255) when it is darker than the mean of its block x block neighborhood
// minus c, so ink on any local background level survives. block must be odd.
func AdaptiveThreshold(m *Mask, block int, c int) (*Mask, error) {
	if block < 3 || block%2 == 0 {
		return nil, fmt.Errorf("adaptive threshold: block size %d must be odd and >= 3", block)
	}
	if m.W == 0 || m.H == 0 {
		return nil, fmt.Errorf("adaptive threshold: empty image")
	}

	integral := integralImage(m)
	out := NewMask(m.W, m.H)
	r := block / 2

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			x0, y0 := x-r, y-r
			x1, y1 := x+r, y+r
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
			count := (x1 - x0 + 1) * (y1 - y0 + 1)
			sum := boxSum(integral, m.W, x0, y0, x1, y1)
			mean := int(sum / uint64(count))
			if int(m.At(x, y)) < mean-c {
				out.Set(x, y, 255)
			}
		}
	}
	return out, nil
}

// integralImage returns the summed-area table of m with one extra row and
// column of zeros.
func integralImage(m *Mask) []uint64 {
	w, h := m.W, m.H
	integral := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(m.Pix[y*w+x])
			integral[(y+1)*(w+1)+(x+1)] = integral[y*(w+1)+(x+1)] + rowSum
		}
	}
	return integral
}

// boxSum returns the sum of pixels in the inclusive rectangle.
func boxSum(integral []uint64, w, x0, y0, x1, y1 int) uint64 {
	stride := w + 1
	return integral[(y1+1)*stride+(x1+1)] -
		integral[y0*stride+(x1+1)] -
		integral[(y1+1)*stride+x0] +
		integral[y0*stride+x0]
}
