package slidefmt

import (
	"io"
	"log/slog"
	"strings"
)

// Result is the outcome of the strict processor.
type Result struct {
	// Text is the markdown to apply. It always passes Validate unless the input was empty.
	Text string `json:"text"`
	// Fixed reports that validation failed after normalization and Text is the sanitized fallback.
	Fixed bool `json:"fixed"`
	// Errors are the violations found after normalization.
	Errors []string `json:"errors,omitempty"`
}

type Processor struct {
	logger *slog.Logger
}

type Option func(*Processor) error

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewProcessor returns a strict processor.
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var defaultProcessor = &Processor{
	logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
}

// Process runs the strict processor with no logging.
func Process(markdown string) *Result {
	return defaultProcessor.Process(markdown)
}

// Process normalizes and validates markdown produced by an external assistant.
// When validation fails the normalized text is sanitized into a single slide and
// the violations found are returned together with Fixed set.
func (p *Processor) Process(markdown string) *Result {
	if strings.TrimSpace(markdown) == "" {
		p.logger.Warn("empty document")
		return &Result{Text: markdown, Errors: []string{"document is empty"}}
	}

	normalized := Normalize(markdown)
	p.logger.Debug("normalized document", slog.Int("bytes", len(normalized)))
	r := Validate(normalized)
	if r.OK {
		return &Result{Text: normalized}
	}
	p.logger.Info("validation failed", slog.Any("errors", r.Errors))

	sanitized := Sanitize(normalized)
	if rr := Validate(sanitized); !rr.OK {
		p.logger.Error("failed to sanitize document", slog.Any("errors", rr.Errors))
	} else {
		p.logger.Info("sanitized document", slog.Int("errors", len(r.Errors)))
	}
	return &Result{
		Text:   sanitized,
		Fixed:  true,
		Errors: r.Errors,
	}
}
