// Package ingestion turns uploaded resume files into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// ExtractError reports a document that could not be read at all.
type ExtractError struct {
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf extraction failed: %s", e.Message)
}

func (e *ExtractError) Unwrap() error { return e.Cause }

// PDFExtractor reads text content out of PDF documents.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText pulls visible text from every page of the document,
// concatenated in page order. Pages that fail to parse are skipped so
// a single corrupt page does not lose the rest of the resume.
func (p *PDFExtractor) ExtractText(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractError{Message: "unreadable document", Cause: err}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", &ExtractError{Message: "unreadable page count", Cause: err}
	}
	if numPages == 0 {
		return "", &ExtractError{Message: "document has no pages"}
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
