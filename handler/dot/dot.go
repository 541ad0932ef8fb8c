package dot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
)

var (
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var _ slog.Handler = (*Handler)(nil)

// Handler renders file progress as marks and a spinner.
type Handler struct {
	handler slog.Handler
	spinner *spinner.Spinner
	stdout  io.Writer
	prefix  []byte
	mu      *sync.Mutex
}

// New returns a handler that renders file progress as marks on stdout. h only gates the level.
func New(h slog.Handler) (_ *Handler, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	return newHandler(h, colorable.NewColorableStdout())
}

func newHandler(h slog.Handler, stdout io.Writer) (*Handler, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stdout))
	if err := s.Color("yellow"); err != nil {
		return nil, err
	}
	s.Start()
	s.Disable()
	return &Handler{
		handler: h,
		spinner: s,
		stdout:  stdout,
		mu:      &sync.Mutex{},
	}, nil
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	h.mu.Lock()
	defer h.mu.Unlock()
	if r.Message == "watching" {
		if !h.spinner.Enabled() {
			h.spinner.Enable()
		}
		return nil
	}
	if h.spinner.Enabled() {
		h.spinner.Disable()
		_, _ = h.stdout.Write(h.prefix)
	}
	switch {
	case r.Message == "processed file", r.Message == "converted file":
		return h.write([]byte(yellow(".")))
	case r.Message == "unchanged file":
		return h.write([]byte(gray("-")))
	case r.Message == "fixed file":
		return h.write([]byte(cyan("*")))
	case r.Message == "valid file":
		return h.write([]byte(green("✓")))
	case strings.HasPrefix(r.Message, "failed to"):
		return h.write([]byte(red("!")))
	case r.Message == "completed":
		_, _ = h.stdout.Write([]byte("\n"))
		h.prefix = nil
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{handler: h.handler.WithAttrs(attrs), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{handler: h.handler.WithGroup(name), spinner: h.spinner, stdout: h.stdout, mu: h.mu}
}

// Stop stops the spinner goroutine.
func (h *Handler) Stop() {
	h.spinner.Stop()
}

func (h *Handler) write(s []byte) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	_, err = h.stdout.Write(s)
	if err != nil {
		return err
	}
	h.prefix = append(h.prefix, s...)
	return nil
}
