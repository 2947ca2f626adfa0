package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/valyala/fasthttp"

	mdserve "github.com/mdserve/go-mdserve"
	"github.com/mdserve/go-mdserve/internal/assets"
	"github.com/mdserve/go-mdserve/internal/config"
)

// server wires the HTTP routes to the converter pool and progress tracker.
type server struct {
	app     *fiber.App
	pool    *mdserve.ConverterPool
	tracker *mdserve.Tracker
}

func newServer(cfg config.Config, pool *mdserve.ConverterPool, tracker *mdserve.Tracker) *server {
	app := fiber.New(fiber.Config{
		AppName:               "mdserve",
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ReadTimeout:           secondsDuration(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout:          secondsDuration(cfg.Server.WriteTimeoutSeconds),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))

	s := &server{app: app, pool: pool, tracker: tracker}

	app.Get("/healthz", s.handleHealthz)
	app.Get("/api/themes", s.handleThemes)
	app.Post("/api/convert", s.handleConvert)
	app.Get("/api/progress/:id", s.handleProgress)

	return s
}

// convertRequest is the JSON request body for POST /api/convert.
// The same fields double as multipart form values for file uploads.
type convertRequest struct {
	Markdown string         `json:"markdown"`
	Filename string         `json:"filename"`
	Format   string         `json:"format"`
	Theme    string         `json:"theme"`
	CSS      string         `json:"css"`
	TOC      bool           `json:"toc"`
	JobID    string         `json:"jobId"`
	Page     *pageRequest   `json:"page"`
	Header   *headerRequest `json:"header"`
	Footer   *footerRequest `json:"footer"`
	Docx     *docxRequest   `json:"docx"`
}

type pageRequest struct {
	Size        string  `json:"size"`
	Orientation string  `json:"orientation"`
	Margin      float64 `json:"margin"`
}

type headerRequest struct {
	Text     string `json:"text"`
	ShowDate bool   `json:"showDate"`
}

type footerRequest struct {
	Position       string `json:"position"`
	ShowPageNumber bool   `json:"showPageNumber"`
	ShowDate       bool   `json:"showDate"`
	Text           string `json:"text"`
}

type docxRequest struct {
	Header      bool `json:"header"`
	Footer      bool `json:"footer"`
	PageNumbers bool `json:"pageNumbers"`
}

func (s *server) handleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *server) handleThemes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"themes": assets.Themes()})
}

// handleConvert accepts either a JSON body or a multipart upload with the
// Markdown in a "document" field, runs the conversion on a pooled converter,
// and returns the document as an attachment.
func (s *server) handleConvert(c *fiber.Ctx) error {
	req, err := s.parseConvertRequest(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	format, err := mdserve.ParseFormat(req.Format)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	input := mdserve.Input{
		Markdown: req.Markdown,
		Filename: req.Filename,
		Format:   format,
		Theme:    req.Theme,
		CSS:      req.CSS,
		TOC:      req.TOC,
		JobID:    req.JobID,
	}
	if req.Page != nil {
		input.Page = &mdserve.PageSettings{
			Size:        req.Page.Size,
			Orientation: req.Page.Orientation,
			Margin:      req.Page.Margin,
		}
	}
	if req.Header != nil {
		input.Header = &mdserve.Header{Text: req.Header.Text, ShowDate: req.Header.ShowDate}
	}
	if req.Footer != nil {
		input.Footer = &mdserve.Footer{
			Position:       req.Footer.Position,
			ShowPageNumber: req.Footer.ShowPageNumber,
			ShowDate:       req.Footer.ShowDate,
			Text:           req.Footer.Text,
		}
	}
	if req.Docx != nil {
		input.Docx = &mdserve.DocxOptions{
			Header:      req.Docx.Header,
			Footer:      req.Docx.Footer,
			PageNumbers: req.Docx.PageNumbers,
		}
	}

	conv, err := s.pool.Acquire(c.UserContext())
	if err != nil {
		return errorResponse(c, fiber.StatusServiceUnavailable, err)
	}
	defer s.pool.Release(conv)

	result, err := conv.Convert(c.UserContext(), input)
	if err != nil {
		return errorResponse(c, statusForError(err), err)
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.Send(result.Data)
}

// parseConvertRequest reads either encoding of the request.
func (s *server) parseConvertRequest(c *fiber.Ctx) (convertRequest, error) {
	var req convertRequest

	if file, err := c.FormFile("document"); err == nil {
		f, err := file.Open()
		if err != nil {
			return req, fmt.Errorf("opening upload: %w", err)
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return req, fmt.Errorf("reading upload: %w", err)
		}

		req.Markdown = string(content)
		req.Filename = file.Filename
		req.Format = c.FormValue("format")
		req.Theme = c.FormValue("theme")
		req.CSS = c.FormValue("css")
		req.JobID = c.FormValue("jobId")
		req.TOC, _ = strconv.ParseBool(c.FormValue("toc"))
		return req, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return req, fmt.Errorf("parsing request body: %w", err)
	}
	return req, nil
}

// handleProgress streams progress events for a job as server-sent events.
// The stream ends when the job completes or the client disconnects.
func (s *server) handleProgress(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing job id")
	}

	ch, cancel := s.tracker.Subscribe(id)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for evt := range ch {
			payload, err := json.Marshal(evt)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			// Flush failure means the client went away.
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}

// errorResponse writes a structured JSON error body.
func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// statusForError maps conversion errors to HTTP status codes: invalid input
// is the client's fault, render failures are the backend's.
func statusForError(err error) int {
	switch {
	case errors.Is(err, mdserve.ErrEmptyMarkdown),
		errors.Is(err, mdserve.ErrUnsupportedFormat),
		errors.Is(err, mdserve.ErrInvalidPageSize),
		errors.Is(err, mdserve.ErrInvalidOrientation),
		errors.Is(err, mdserve.ErrInvalidMargin),
		errors.Is(err, mdserve.ErrInvalidFooterPosition),
		errors.Is(err, mdserve.ErrUnknownTheme):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}

func secondsDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
