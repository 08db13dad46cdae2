package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"contour-sketch/internal/logger"
	"contour-sketch/internal/models"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxInputBytes bounds how much of a stream is read before decoding.
const maxInputBytes = 256 << 20

var supportedExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// IsSupportedImage reports whether path has an extension the loader can decode.
func IsSupportedImage(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ImageLoader decodes raster files into single-channel 8-bit images.
type ImageLoader struct {
	logger logger.Logger
}

func NewImageLoader(log logger.Logger) *ImageLoader {
	if log == nil {
		log = logger.Nop()
	}
	return &ImageLoader{logger: log}
}

// LoadFromReader reads the whole stream and decodes it. source names the input in errors.
func (l *ImageLoader) LoadFromReader(r io.Reader, source string) (*models.RasterImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return nil, &models.ImageReadError{Source: source, Reason: "failed to read image data", Err: err}
	}
	if len(data) > maxInputBytes {
		return nil, &models.ImageReadError{Source: source, Reason: fmt.Sprintf("input exceeds %d bytes", maxInputBytes)}
	}

	l.logger.Debug("ImageLoader", "image data read", map[string]interface{}{
		"source":     source,
		"size_bytes": len(data),
	})

	return l.LoadFromBytes(data, source)
}

func (l *ImageLoader) LoadFromBytes(data []byte, source string) (*models.RasterImage, error) {
	if len(data) == 0 {
		return nil, &models.ImageReadError{Source: source, Reason: "empty input"}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &models.ImageReadError{Source: source, Reason: "unsupported or corrupt image", Err: err}
	}

	raster, err := ToGray(img)
	if err != nil {
		return nil, &models.ImageReadError{Source: source, Reason: "unusable image", Err: err}
	}
	raster.Format = format

	l.logger.Debug("ImageLoader", "image decoded", map[string]interface{}{
		"source": source,
		"width":  raster.Width,
		"height": raster.Height,
		"format": format,
	})

	return raster, nil
}

// ToGray converts any decoded image to 8-bit luminance using the fixed-point
// BT.601 weights of OpenCV's RGB to gray conversion. Alpha is ignored.
func ToGray(img image.Image) (*models.RasterImage, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}

	b := img.Bounds()
	raster, err := models.NewRasterImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < raster.Height; y++ {
			row := g.Pix[(y+b.Min.Y-g.Rect.Min.Y)*g.Stride+(b.Min.X-g.Rect.Min.X):]
			copy(raster.Pix[y*raster.Width:(y+1)*raster.Width], row[:raster.Width])
		}
		return raster, nil
	}

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			raster.Pix[y*raster.Width+x] = luminance(c.R, c.G, c.B)
		}
	}
	return raster, nil
}

func luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*4899 + uint32(g)*9617 + uint32(b)*1868 + 8192) >> 14)
}
