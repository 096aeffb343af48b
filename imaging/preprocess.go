package imaging

import "image"

// Default adaptive threshold parameters, tuned for scanned documents.
const (
	thresholdBlock = 11
	thresholdC     = 2
)

// Preprocess converts a decoded image into the binary ink mask consumed by
// table region detection: grayscale conversion, 3x3 median denoise, then
// adaptive mean thresholding.
func Preprocess(img image.Image) (*Mask, error) {
	gray := Grayscale(img)
	denoised := MedianBlur3(gray)
	return AdaptiveThreshold(denoised, thresholdBlock, thresholdC)
}
