package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeEngine struct {
	texts map[string]string
	errs  map[string]error
}

func (e *fakeEngine) Available() error { return nil }
func (e *fakeEngine) Version() string  { return "fake" }

func (e *fakeEngine) ImageText(image []byte) (string, error) {
	key := string(image)
	if err, ok := e.errs[key]; ok {
		return "", err
	}
	return e.texts[key], nil
}

type fakeFiles struct {
	missing map[string]bool
}

func (f *fakeFiles) ReadFile(path string) ([]byte, error) {
	if f.missing[path] {
		return nil, errors.New("file does not exist")
	}
	// The fake engine keys recognition results by file content.
	return []byte(path), nil
}

func TestExtractBatchDegradesPerImage(t *testing.T) {
	engine := &fakeEngine{
		texts: map[string]string{
			"/uploads/a.png": "  What is the capital of France?  ",
			"/uploads/b.png": "",
		},
		errs: map[string]error{
			"/uploads/c.png": errors.New("decode failed"),
		},
	}
	files := &fakeFiles{missing: map[string]bool{"/uploads/d.png": true}}

	paths := []string{"/uploads/a.png", "/uploads/b.png", "/uploads/c.png", "/uploads/d.png"}
	texts := ExtractBatch(context.Background(), engine, files, paths)

	if len(texts) != len(paths) {
		t.Fatalf("expected %d texts, got %d", len(paths), len(texts))
	}
	if texts[0] != "What is the capital of France?" {
		t.Errorf("expected trimmed recognized text, got %q", texts[0])
	}
	if texts[1] != noTextSentinel {
		t.Errorf("expected %q for empty recognition, got %q", noTextSentinel, texts[1])
	}
	if !strings.HasPrefix(texts[2], extractErrorPrefix) {
		t.Errorf("expected processing-error sentinel for engine failure, got %q", texts[2])
	}
	if !strings.HasPrefix(texts[3], extractErrorPrefix) {
		t.Errorf("expected processing-error sentinel for missing file, got %q", texts[3])
	}
}

type stuckEngine struct{ fakeEngine }

func (e *stuckEngine) ImageText(image []byte) (string, error) {
	time.Sleep(time.Second)
	return "too late", nil
}

func TestExtractBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	texts := ExtractBatch(ctx, &stuckEngine{}, &fakeFiles{}, []string{"/uploads/a.png"})

	if len(texts) != 1 {
		t.Fatalf("expected 1 text, got %d", len(texts))
	}
	if !strings.HasPrefix(texts[0], extractErrorPrefix) {
		t.Errorf("expected processing-error sentinel after cancellation, got %q", texts[0])
	}
}

func TestExtractBatchEmpty(t *testing.T) {
	texts := ExtractBatch(context.Background(), &fakeEngine{}, &fakeFiles{}, nil)
	if len(texts) != 0 {
		t.Errorf("expected no texts, got %d", len(texts))
	}
}
