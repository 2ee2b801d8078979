package quiz

import (
	"context"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Engine is the OCR engine the pipeline extracts image text with.
type Engine interface {
	// Available reports whether the engine works on this host at all. It is
	// checked once per batch, not per image.
	Available() error
	Version() string
	ImageText(image []byte) (string, error)
}

// FileStore reads uploaded files by their stored public path.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
}

// TesseractEngine recognizes text with the tesseract library.
type TesseractEngine struct {
	Language string
}

func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{Language: language}
}

func (e *TesseractEngine) Available() error {
	client := gosseract.NewClient()
	defer client.Close()
	if client.Version() == "" {
		return ErrEngineUnavailable
	}
	if err := client.SetLanguage(e.Language); err != nil {
		return ErrEngineUnavailable
	}
	return nil
}

func (e *TesseractEngine) Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

func (e *TesseractEngine) ImageText(image []byte) (string, error) {
	// One client per image: gosseract clients are not safe to share.
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.Language); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return client.Text()
}

const (
	imageTimeout = 15 * time.Second

	noTextSentinel     = "no text extracted"
	extractErrorPrefix = "processing error: "
)

// ExtractBatch runs OCR over every path and always returns one string per
// path. A failing image contributes a sentinel placeholder instead of an
// error, so one bad image never aborts quiz generation for the rest of the
// batch.
func ExtractBatch(ctx context.Context, engine Engine, files FileStore, paths []string) []string {
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		texts = append(texts, extractOne(ctx, engine, files, path))
	}
	return texts
}

func extractOne(ctx context.Context, engine Engine, files FileStore, path string) string {
	image, err := files.ReadFile(path)
	if err != nil {
		return extractErrorPrefix + err.Error()
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := engine.ImageText(image)
		ch <- result{text, err}
	}()

	// A stuck decode must not stall the whole batch.
	timer := time.NewTimer(imageTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return extractErrorPrefix + ctx.Err().Error()
	case <-timer.C:
		return extractErrorPrefix + "recognition timed out"
	case r := <-ch:
		if r.err != nil {
			return extractErrorPrefix + r.err.Error()
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			return noTextSentinel
		}
		return text
	}
}
