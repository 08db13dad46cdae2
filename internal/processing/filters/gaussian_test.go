package filters

import (
	"testing"

	"contour-sketch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianKernel(t *testing.T) {
	k, err := GaussianKernel(5, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}, k)

	k, err = GaussianKernel(11, 0)
	require.NoError(t, err)
	require.Len(t, k, 11)

	sum := 0.0
	for i, v := range k {
		sum += v
		assert.InDelta(t, k[len(k)-1-i], v, 1e-12, "kernel must be symmetric")
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Greater(t, k[5], k[4])

	_, err = GaussianKernel(4, 0)
	assert.Error(t, err)
	_, err = GaussianKernel(-1, 0)
	assert.Error(t, err)
}

func TestBorderIndex(t *testing.T) {
	tests := []struct {
		i, n int
		mode BorderMode
		want int
	}{
		{i: 2, n: 5, mode: BorderReflect101, want: 2},
		{i: -1, n: 5, mode: BorderReflect101, want: 1},
		{i: -2, n: 5, mode: BorderReflect101, want: 2},
		{i: 5, n: 5, mode: BorderReflect101, want: 3},
		{i: 6, n: 5, mode: BorderReflect101, want: 2},
		{i: -3, n: 2, mode: BorderReflect101, want: 1},
		{i: -4, n: 1, mode: BorderReflect101, want: 0},
		{i: -1, n: 5, mode: BorderReplicate, want: 0},
		{i: 9, n: 5, mode: BorderReplicate, want: 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, borderIndex(tt.i, tt.n, tt.mode), "i=%d n=%d mode=%d", tt.i, tt.n, tt.mode)
	}
}

func TestGaussianFilterUniformStaysUniform(t *testing.T) {
	src, err := models.NewRasterImage(17, 9)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = 128
	}

	for _, mode := range []BorderMode{BorderReflect101, BorderReplicate} {
		out, err := NewGaussianFilter(11, 0, mode).Apply(src)
		require.NoError(t, err)
		for _, v := range out.Pix {
			require.Equal(t, uint8(128), v)
		}
	}
}

func TestGaussianFilterImpulse(t *testing.T) {
	src, err := models.NewRasterImage(9, 9)
	require.NoError(t, err)
	src.Set(4, 4, 255)

	out, err := NewGaussianFilter(5, 0, BorderReflect101).Apply(src)
	require.NoError(t, err)

	// 255 * 0.375 * 0.375 = 35.86
	assert.Equal(t, uint8(36), out.At(4, 4))
	assert.Equal(t, out.At(3, 4), out.At(5, 4))
	assert.Equal(t, out.At(4, 3), out.At(4, 5))
	assert.Equal(t, uint8(0), out.At(0, 0))
	assert.Equal(t, uint8(255), src.At(4, 4), "input must not be modified")
}

func TestGaussianFilterRejectsBadInput(t *testing.T) {
	_, err := NewGaussianFilter(5, 0, BorderReflect101).Apply(nil)
	assert.Error(t, err)

	src, err := models.NewRasterImage(3, 3)
	require.NoError(t, err)
	_, err = NewGaussianFilter(4, 0, BorderReflect101).Apply(src)
	assert.Error(t, err)
}
