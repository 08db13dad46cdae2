package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"contour-sketch/internal/models"
	"contour-sketch/internal/render"
	"contour-sketch/internal/svg"

	"github.com/google/uuid"
)

var allowedUploads = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

const svgURL = "/output.svg"

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

// convertHandler serves POST /: either a new upload or a parameter update.
func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, "No session", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	if r.MultipartForm != nil && len(r.MultipartForm.File["file"]) > 0 {
		s.handleUpload(w, r, sess)
		return
	}

	if r.FormValue("update") != "" {
		s.handleUpdate(w, r, sess)
		return
	}

	respondError(w, "No file uploaded", http.StatusBadRequest)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, sess Session) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(w, "No selected file", http.StatusBadRequest)
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploads[ext] {
		respondError(w, "Invalid file type", http.StatusBadRequest)
		return
	}

	uploadPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+ext)
	dst, err := os.Create(uploadPath)
	if err != nil {
		s.logger.Error("Server", err, map[string]interface{}{"path": uploadPath})
		respondError(w, "Error processing file", http.StatusInternalServerError)
		return
	}
	_, copyErr := dst.ReadFrom(file)
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(uploadPath)
		s.logger.Error("Server", errors.Join(copyErr, closeErr), map[string]interface{}{"path": uploadPath})
		respondError(w, "Error processing file", http.StatusInternalServerError)
		return
	}

	s.sessions.SetCurrentFile(sess.ID, uploadPath)
	s.logger.Info("Server", "image uploaded", map[string]interface{}{
		"session":  sess.ID,
		"filename": header.Filename,
		"size":     header.Size,
	})

	s.convert(w, r, uploadPath, sess.OutputPath, s.defaults)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, sess Session) {
	current, ok := s.sessions.Get(sess.ID)
	if !ok || current.CurrentFile == "" {
		respondError(w, "No image uploaded yet", http.StatusBadRequest)
		return
	}

	params, err := parseParams(r, s.defaults)
	if err != nil {
		respondConversionError(w, err)
		return
	}

	s.convert(w, r, current.CurrentFile, current.OutputPath, params)
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request, input, output string, params models.ConversionParams) {
	res, err := s.converter.ConvertFile(r.Context(), input, output, params)
	if err != nil {
		s.logger.Error("Server", err, map[string]interface{}{
			"input":  input,
			"params": params.String(),
		})
		respondConversionError(w, err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"success":  true,
		"svg_path": svgURL,
		"paths":    res.Stats.Paths,
	}, http.StatusOK)
}

func (s *Server) svgHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if _, err := os.Stat(sess.OutputPath); err != nil {
		http.Error(w, "SVG file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", svg.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, sess.OutputPath)
}

func (s *Server) pngHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	dpi := render.DefaultDPI
	if v := r.URL.Query().Get("dpi"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 || parsed > 1200 {
			http.Error(w, "dpi must be a number in (0, 1200]", http.StatusBadRequest)
			return
		}
		dpi = parsed
	}

	f, err := os.Open(sess.OutputPath)
	if err != nil {
		http.Error(w, "SVG file not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	img, err := render.RasterizeSVG(f, dpi)
	if err != nil {
		s.logger.Error("Server", err, map[string]interface{}{"dpi": dpi})
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, img); err != nil {
		s.logger.Error("Server", err, nil)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="output.png"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status":  "ok",
		"backend": s.converter.Backend(),
	}, http.StatusOK)
}

// parseParams reads the update form, falling back to defaults for absent fields.
func parseParams(r *http.Request, defaults models.ConversionParams) (models.ConversionParams, error) {
	p := defaults
	var err error

	if p.MinContourLength, err = formInt(r, "minContourLen", p.MinContourLength); err != nil {
		return p, err
	}
	if p.StrokeWidth, err = formFloat(r, "strokeWidth", p.StrokeWidth); err != nil {
		return p, err
	}
	if p.BlockSize, err = formInt(r, "thresholdBlockSize", p.BlockSize); err != nil {
		return p, err
	}
	if p.ThresholdC, err = formInt(r, "thresholdC", p.ThresholdC); err != nil {
		return p, err
	}
	if v := r.FormValue("strokeColor"); v != "" {
		p.StrokeColor = v
	}
	if v := r.FormValue("backgroundColor"); v != "" {
		p.BackgroundColor = v
	}
	return p, p.Validate()
}

func formInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, &models.InvalidParameterError{Name: key, Value: v, Reason: "not an integer"}
	}
	return n, nil
}

func formFloat(r *http.Request, key string, fallback float64) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback, &models.InvalidParameterError{Name: key, Value: v, Reason: "not a number"}
	}
	return f, nil
}

func respondConversionError(w http.ResponseWriter, err error) {
	var perr *models.InvalidParameterError
	var rerr *models.ImageReadError
	var gerr *models.EmptyGeometryError

	switch {
	case errors.As(err, &perr):
		respondError(w, perr.Error(), http.StatusBadRequest)
	case errors.As(err, &rerr):
		respondError(w, fmt.Sprintf("Unsupported image: %s", rerr.Reason), http.StatusUnsupportedMediaType)
	case errors.As(err, &gerr):
		respondError(w, gerr.Error(), http.StatusUnprocessableEntity)
	default:
		respondError(w, "Error processing file", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
