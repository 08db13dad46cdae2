package models

import "fmt"

// ImageReadError reports a raster that could not be read, decoded or used.
type ImageReadError struct {
	Source string
	Reason string
	Err    error
}

func (e *ImageReadError) Error() string {
	msg := "image read failed"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ImageReadError) Unwrap() error { return e.Err }

// InvalidParameterError reports a conversion parameter outside its contract.
type InvalidParameterError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// InvalidMaskError reports a mask that violates the binarizer/extractor contract.
type InvalidMaskError struct {
	Reason string
}

func (e *InvalidMaskError) Error() string {
	return "invalid mask: " + e.Reason
}

// EmptyGeometryError is returned when visible paths were required but none survived filtering.
type EmptyGeometryError struct {
	Contours         int
	MinContourLength int
}

func (e *EmptyGeometryError) Error() string {
	return fmt.Sprintf("no path left to draw: %d contours, none longer than %d points",
		e.Contours, e.MinContourLength)
}
