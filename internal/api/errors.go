package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cdfkit/pkg/cdf"
	"github.com/samcharles93/cdfkit/pkg/cdf/cdfdata"
)

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
	Offset  *int   `json:"offset,omitempty"`
}

var errorCodes = []struct {
	err  error
	code string
}{
	{cdf.ErrBadMagic, "bad_magic"},
	{cdf.ErrUnknownVersion, "unknown_version"},
	{cdf.ErrUnknownType, "unknown_type"},
	{cdf.ErrTruncated, "truncated"},
	{cdf.ErrInvalidUTF8, "invalid_utf8"},
	{cdf.ErrMalformedListMarker, "malformed_list_marker"},
	{cdf.ErrDimensionIndex, "dimension_index"},
	{cdf.ErrRecordDimension, "record_dimension"},
	{cdfdata.ErrStreamingRecords, "streaming_records"},
	{cdfdata.ErrTooLarge, "too_large"},
	{cdfdata.ErrSize, "size_mismatch"},
}

// errorCode names the failure kind of a decoder error.
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ""
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, ResponseError{Message: msg, Type: "invalid_request_error"})
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, ResponseError{Message: msg, Type: "not_found_error"})
}

// writeDecodeError reports a file that could not be decoded or read.
func writeDecodeError(c *echo.Context, err error) error {
	body := ResponseError{
		Message: err.Error(),
		Type:    "decode_error",
		Code:    errorCode(err),
	}
	var de *cdf.DecodeError
	if errors.As(err, &de) {
		off := de.Offset
		body.Offset = &off
		body.Param = de.Field
	}
	return writeError(c, http.StatusUnprocessableEntity, body)
}

func writeError(c *echo.Context, status int, body ResponseError) error {
	return c.JSON(status, map[string]any{"error": body})
}
