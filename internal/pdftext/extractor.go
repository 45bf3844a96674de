// Package pdftext extracts plain text from scanned receipt PDFs. The
// extraction itself is an external collaborator; this package only wraps
// the pdftotext tool (with an optional OCR fallback) behind an interface
// the batch processor can mock.
package pdftext

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"expensereport/internal/logging"
)

// TextExtractor extracts text content from a PDF file at the given path.
type TextExtractor interface {
	ExtractText(pdfPath string) (string, error)
}

// PopplerExtractor implements TextExtractor using the pdftotext command.
// When pdftotext yields no text (image-only scans), it falls back to OCR
// via the ocrmypdf command if available.
type PopplerExtractor struct {
	logger     logging.Logger
	ocrEnabled bool
}

// NewPopplerExtractor creates the production extractor. ocrEnabled controls
// the OCR fallback for image-only PDFs.
func NewPopplerExtractor(logger logging.Logger, ocrEnabled bool) *PopplerExtractor {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &PopplerExtractor{logger: logger, ocrEnabled: ocrEnabled}
}

// ExtractText extracts text from a PDF file using pdftotext -layout.
func (e *PopplerExtractor) ExtractText(pdfPath string) (string, error) {
	text, err := e.runPdftotext(pdfPath)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" && e.ocrEnabled {
		e.logger.WithField(logging.FieldFile, pdfPath).
			Info("No text layer found, attempting OCR fallback")
		return e.runOCR(pdfPath)
	}

	return text, nil
}

func (e *PopplerExtractor) runPdftotext(pdfPath string) (string, error) {
	tempFile := pdfPath + ".txt"

	cmd := exec.Command("pdftotext", "-layout", pdfPath, tempFile)
	if err := cmd.Run(); err != nil {
		e.logger.WithError(err).Error("Failed to run pdftotext command")
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	if err := os.Remove(tempFile); err != nil {
		e.logger.WithError(err).Warn("Failed to remove temporary text file")
	}

	return string(output), nil
}

// runOCR rasterizes and OCRs the PDF, then re-extracts the text layer.
func (e *PopplerExtractor) runOCR(pdfPath string) (string, error) {
	ocrFile := pdfPath + ".ocr.pdf"
	defer func() {
		if err := os.Remove(ocrFile); err != nil && !os.IsNotExist(err) {
			e.logger.WithError(err).Warn("Failed to remove OCR output file")
		}
	}()

	cmd := exec.Command("ocrmypdf", "--skip-text", pdfPath, ocrFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running ocrmypdf: %w", err)
	}

	return e.runPdftotext(ocrFile)
}

// MockTextExtractor implements TextExtractor for testing.
type MockTextExtractor struct {
	MockText string
	MockErr  error
}

// NewMockTextExtractor creates a MockTextExtractor with the given mock data.
func NewMockTextExtractor(mockText string, mockErr error) *MockTextExtractor {
	return &MockTextExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockTextExtractor) ExtractText(string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
