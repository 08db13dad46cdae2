package filters

import (
	"fmt"
	"math"

	"contour-sketch/internal/models"
)

// BorderMode selects how pixels outside the raster are synthesized.
type BorderMode int

const (
	// BorderReflect101 mirrors around the edge pixel without repeating it: gfedcb|abcdefgh|gfedcba.
	BorderReflect101 BorderMode = iota
	// BorderReplicate repeats the edge pixel: aaaaaa|abcdefgh|hhhhhhh.
	BorderReplicate
)

// Precomputed kernels for small apertures when no sigma is given.
var smallKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// GaussianKernel returns a normalized 1-D kernel of the given odd size.
// A sigma <= 0 is derived from the size as 0.3*((size-1)*0.5-1)+0.8.
func GaussianKernel(size int, sigma float64) ([]float64, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("kernel size must be odd and positive, got %d", size)
	}

	if sigma <= 0 {
		if k, ok := smallKernels[size]; ok {
			out := make([]float64, len(k))
			copy(out, k)
			return out, nil
		}
		sigma = 0.3*((float64(size)-1)*0.5-1) + 0.8
	}

	kernel := make([]float64, size)
	center := float64(size-1) / 2
	scale := -0.5 / (sigma * sigma)
	sum := 0.0
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(scale * d * d)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel, nil
}

// GaussianFilter blurs a raster with a separable Gaussian kernel.
type GaussianFilter struct {
	KernelSize int
	Sigma      float64
	Border     BorderMode
}

func NewGaussianFilter(kernelSize int, sigma float64, border BorderMode) *GaussianFilter {
	return &GaussianFilter{KernelSize: kernelSize, Sigma: sigma, Border: border}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

// Apply returns a new blurred raster; the input is left untouched.
func (g *GaussianFilter) Apply(src *models.RasterImage) (*models.RasterImage, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	kernel, err := GaussianKernel(g.KernelSize, g.Sigma)
	if err != nil {
		return nil, err
	}

	w, h := src.Width, src.Height
	radius := len(kernel) / 2

	// Column offsets are resolved once per row position, not per tap.
	xIndex := borderTable(w, radius, g.Border)
	yIndex := borderTable(h, radius, g.Border)

	horizontal := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		out := horizontal[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sum := 0.0
			for k, weight := range kernel {
				sum += weight * float64(row[xIndex[x+k]])
			}
			out[x] = sum
		}
	}

	dst := &models.RasterImage{Width: w, Height: h, Pix: make([]uint8, w*h), Format: src.Format}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k, weight := range kernel {
				sum += weight * horizontal[yIndex[y+k]*w+x]
			}
			dst.Pix[y*w+x] = saturate(sum)
		}
	}

	return dst, nil
}

// borderTable maps padded positions [0, n+2*radius) to source indices.
func borderTable(n, radius int, mode BorderMode) []int {
	table := make([]int, n+2*radius)
	for i := range table {
		table[i] = borderIndex(i-radius, n, mode)
	}
	return table
}

func borderIndex(i, n int, mode BorderMode) int {
	if i >= 0 && i < n {
		return i
	}
	if mode == BorderReplicate || n == 1 {
		if i < 0 {
			return 0
		}
		return n - 1
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*(n-1) - i
		}
	}
	return i
}

func saturate(v float64) uint8 {
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
