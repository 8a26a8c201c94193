// Package acquirer obtains machine-readable text from statement documents.
// Native text extraction is attempted first; scanned documents fall back to
// per-page optical character recognition.
package acquirer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Method reports how the text was obtained.
type Method string

const (
	// MethodNative means the document carried a selectable text layer.
	MethodNative Method = "native"
	// MethodRecognized means the pages were recognized with OCR.
	MethodRecognized Method = "recognized"
	// MethodTabular means the text came from a spreadsheet, not a document.
	MethodTabular Method = "tabular"
)

// Text is the acquired content: page texts joined with single newlines, plus
// the acquisition method. It is immutable once produced.
type Text struct {
	Content string
	Method  Method
	Pages   int
}

// AcquisitionError reports a page that could not be rasterized or recognized.
// It is fatal for the whole extraction call: a silently skipped page would
// corrupt line-offset-sensitive strategies downstream.
type AcquisitionError struct {
	Page int
	Err  error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire page %d: %v", e.Page, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

const (
	ocrDPI      = 300
	ocrLanguage = "eng"
)

// Acquirer turns statement documents into text.
type Acquirer struct {
	dpi      int
	language string
}

// New returns an acquirer with the default recognition settings: 300 DPI
// rasterization and the English language model.
func New() *Acquirer {
	return &Acquirer{dpi: ocrDPI, language: ocrLanguage}
}

// NewWithSettings returns an acquirer with explicit recognition settings.
// Zero values fall back to the defaults.
func NewWithSettings(language string, dpi int) *Acquirer {
	a := New()
	if language != "" {
		a.language = language
	}
	if dpi > 0 {
		a.dpi = dpi
	}
	return a
}

// Acquire extracts text from the document at path. The native text layer is
// tried first; when it is empty the pages are recognized in order. All
// transient buffers and handles are released before returning, on every exit
// path.
func (a *Acquirer) Acquire(ctx context.Context, path string) (Text, error) {
	if native, ok := nativeText(path); ok {
		return native, nil
	}
	return a.recognize(ctx, path)
}

// nativeText reads the document's selectable text layer. A read failure is
// treated the same as an empty layer: the document goes to recognition.
func nativeText(path string) (Text, bool) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return Text{}, false
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return Text{}, false
	}
	content, err := io.ReadAll(plain)
	if err != nil {
		return Text{}, false
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return Text{}, false
	}
	return Text{Content: trimmed, Method: MethodNative, Pages: reader.NumPage()}, true
}

var pageImageRe = regexp.MustCompile(`_(\d+)_[^_.]+\.(?:png|jpe?g|tiff?)$`)

// recognize rasterizes each page's image content and runs it through the OCR
// engine, concatenating page texts in page order.
func (a *Acquirer) recognize(ctx context.Context, path string) (Text, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: fmt.Errorf("page count: %w", err)}
	}

	workDir, err := os.MkdirTemp("", "statement-ocr-*")
	if err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: fmt.Errorf("scratch dir: %w", err)}
	}
	defer os.RemoveAll(workDir)

	if err := api.ExtractImagesFile(path, workDir, nil, nil); err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: fmt.Errorf("extract page images: %w", err)}
	}

	byPage, err := pageImages(workDir)
	if err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(a.language); err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: fmt.Errorf("set language: %w", err)}
	}
	if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(a.dpi)); err != nil {
		return Text{}, &AcquisitionError{Page: 0, Err: fmt.Errorf("set dpi: %w", err)}
	}

	pages := make([]string, pageCount)
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return Text{}, err
		}

		var parts []string
		for _, imgPath := range byPage[page] {
			text, err := a.recognizeImage(client, imgPath)
			if err != nil {
				return Text{}, &AcquisitionError{Page: page, Err: err}
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
		pages[page-1] = strings.Join(parts, "\n")
	}

	return Text{
		Content: strings.Join(pages, "\n"),
		Method:  MethodRecognized,
		Pages:   pageCount,
	}, nil
}

// recognizeImage preprocesses one page image and recognizes it. The
// preprocessed copy lives only for the duration of the call.
func (a *Acquirer) recognizeImage(client *gosseract.Client, imgPath string) (string, error) {
	prepared, cleanup, err := preprocessImage(imgPath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := client.SetImage(prepared); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// pageImages indexes extracted image files by their 1-based page number.
// pdfcpu names extracted images <base>_<page>_<resource>.<ext>.
func pageImages(dir string) (map[int][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scratch dir: %w", err)
	}

	byPage := make(map[int][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageImageRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		page, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		byPage[page] = append(byPage[page], filepath.Join(dir, entry.Name()))
	}
	for _, paths := range byPage {
		sort.Strings(paths)
	}
	return byPage, nil
}
