package filter

import (
	"image"
	"sync"
)

// Blur returns a Gaussian-blurred copy of src. The result has the bounds of
// src; coverage spreading past them is lost.
func Blur(src *image.Alpha, sigma float64) *image.Alpha {
	dst := image.NewAlpha(src.Rect)
	if sigma <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	width, height := src.Rect.Dx(), src.Rect.Dy()
	if width == 0 || height == 0 {
		return dst
	}
	kernel := CachedGaussianKernel(sigma)
	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, width, height, kernel)
	blurVertical(temp, dst, width, height, kernel)
	return dst
}

// blurHorizontal convolves each row of src into temp.
func blurHorizontal(src *image.Alpha, temp []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+width]
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				if kx := x + k - half; kx >= 0 && kx < width {
					sum += float32(row[kx]) * w
				}
			}
			temp[y*width+x] = sum
		}
	}
}

// blurVertical convolves each column of temp into dst.
func blurVertical(temp []float32, dst *image.Alpha, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, w := range kernel {
				if ky := y + k - half; ky >= 0 && ky < height {
					sum += temp[ky*width+x] * w
				}
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any { return &floatBuffer{} },
}

// getTempBuffer returns a zeroed buffer of exactly size elements.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if cap(wrapper.data) < size {
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers.
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and rounds to nearest.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
