package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cdfkit/internal/report"
	"github.com/samcharles93/cdfkit/internal/version"
	"github.com/samcharles93/cdfkit/pkg/cdf"
	"github.com/samcharles93/cdfkit/pkg/cdf/cdfdata"
)

// DefaultMaxUploadBytes caps request bodies when Options leaves it unset.
const DefaultMaxUploadBytes = 64 << 20

type Options struct {
	MaxUploadBytes int64
	// MaxValues caps attribute values embedded in reports.
	MaxValues int
	// Strict rejects uploads whose header fails cdf.Header.Validate.
	Strict bool
}

type Server struct {
	store *FileStore
	opts  Options
	clock func() time.Time
}

func NewServer(store *FileStore, opts Options) *Server {
	if store == nil {
		store = NewFileStore(0)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		store: store,
		opts:  opts,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/files", s.handleUpload)
	e.GET("/v1/files/:id", s.handleGetFile)
	e.DELETE("/v1/files/:id", s.handleDeleteFile)
	e.GET("/v1/files/:id/variables/:name", s.handleGetVariable)
	e.GET("/v1/version", s.handleVersion)
}

type FileResponse struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	Name      string         `json:"name,omitempty"`
	Bytes     int            `json:"bytes"`
	CreatedAt int64          `json:"created_at"`
	Report    *report.Report `json:"report"`
}

type VariableResponse struct {
	FileID    string   `json:"file_id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Shape     []uint64 `json:"shape"`
	Values    any      `json:"values"`
	Truncated bool     `json:"truncated,omitempty"`
}

type DeleteFileResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

func (s *Server) handleUpload(c *echo.Context) error {
	body := c.Request().Body
	if body == nil {
		return writeBadRequest(c, "request body is empty")
	}
	buf, err := io.ReadAll(io.LimitReader(body, s.opts.MaxUploadBytes+1))
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("read body: %v", err))
	}
	if int64(len(buf)) > s.opts.MaxUploadBytes {
		return writeError(c, http.StatusRequestEntityTooLarge, ResponseError{
			Message: fmt.Sprintf("upload exceeds %d bytes", s.opts.MaxUploadBytes),
			Type:    "invalid_request_error",
			Code:    "too_large",
		})
	}

	f, err := cdf.Decode(buf)
	if err != nil {
		return writeDecodeError(c, err)
	}
	if s.opts.Strict {
		if err := f.Header.Validate(); err != nil {
			return writeDecodeError(c, err)
		}
	}

	rec := s.store.Save(c.QueryParam("name"), f, s.clock())
	return c.JSON(http.StatusCreated, s.fileResponse(rec))
}

func (s *Server) handleGetFile(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "file not found")
	}
	return c.JSON(http.StatusOK, s.fileResponse(rec))
}

func (s *Server) handleDeleteFile(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "file not found")
	}
	return c.JSON(http.StatusOK, DeleteFileResponse{
		ID:      id,
		Object:  "file",
		Deleted: true,
	})
}

func (s *Server) handleGetVariable(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "file not found")
	}
	name := c.Param("name")
	v, ok := rec.File.Header.Variable(name)
	if !ok {
		return writeNotFound(c, fmt.Sprintf("variable %q not found", name))
	}
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	shape, err := cdfdata.Shape(rec.File.Header, v)
	if err != nil {
		return writeDecodeError(c, err)
	}
	values, err := cdfdata.ReadVariable(rec.File, v)
	if err != nil {
		return writeDecodeError(c, err)
	}
	values, truncated := report.Limit(values, limit)
	return c.JSON(http.StatusOK, VariableResponse{
		FileID:    rec.ID,
		Name:      v.Name,
		Type:      v.Type.String(),
		Shape:     shape,
		Values:    values,
		Truncated: truncated,
	})
}

func (s *Server) handleVersion(c *echo.Context) error {
	return c.JSON(http.StatusOK, version.Resolve())
}

func (s *Server) fileResponse(rec *fileRecord) FileResponse {
	return FileResponse{
		ID:        rec.ID,
		Object:    "file",
		Name:      rec.Name,
		Bytes:     rec.Size,
		CreatedAt: rec.CreatedAt.Unix(),
		Report:    report.BuildFile(rec.Name, rec.File, report.Options{MaxValues: s.opts.MaxValues}),
	}
}

var errBadLimit = errors.New("limit must be a non-negative integer")

func parseLimit(q string) (int, error) {
	if q == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 0 {
		return 0, errBadLimit
	}
	return n, nil
}
