package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"contour-sketch/internal/models"
)

const (
	namespace      = "http://www.w3.org/2000/svg"
	ContentType    = "image/svg+xml"
	svgVersion     = "1.1"
	svgBaseProfile = "full"
)

type svgRoot struct {
	XMLName     xml.Name  `xml:"svg"`
	Xmlns       string    `xml:"xmlns,attr"`
	Version     string    `xml:"version,attr"`
	BaseProfile string    `xml:"baseProfile,attr"`
	Width       string    `xml:"width,attr"`
	Height      string    `xml:"height,attr"`
	ViewBox     string    `xml:"viewBox,attr"`
	Rect        svgRect   `xml:"rect"`
	Paths       []svgPath `xml:"path"`
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type svgPath struct {
	D           string `xml:"d,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

// Encode writes doc as an SVG 1.1 document. Output is byte-identical for equal documents.
func Encode(w io.Writer, doc *models.VectorDocument) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	root := svgRoot{
		Xmlns:       namespace,
		Version:     svgVersion,
		BaseProfile: svgBaseProfile,
		Width:       strconv.Itoa(doc.Width),
		Height:      strconv.Itoa(doc.Height),
		ViewBox:     fmt.Sprintf("0 0 %d %d", doc.Width, doc.Height),
		Rect: svgRect{
			X:      strconv.Itoa(doc.Background.X),
			Y:      strconv.Itoa(doc.Background.Y),
			Width:  strconv.Itoa(doc.Background.Width),
			Height: strconv.Itoa(doc.Background.Height),
			Fill:   doc.Background.Fill.String(),
		},
		Paths: make([]svgPath, 0, len(doc.Paths)),
	}

	for i, p := range doc.Paths {
		width, err := FormatNumber(p.StrokeWidth)
		if err != nil {
			return fmt.Errorf("path %d stroke width: %w", i, err)
		}
		root.Paths = append(root.Paths, svgPath{
			D:           p.Data(),
			Fill:        "none",
			Stroke:      p.Stroke.String(),
			StrokeWidth: width,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal is Encode into a byte slice.
func Marshal(doc *models.VectorDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatNumber renders v as a plain decimal. NaN and infinities are rejected.
func FormatNumber(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%v is not a finite number", v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}
