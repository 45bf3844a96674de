package batchproc

import (
	"context"
	"errors"
	"testing"

	"expensereport/internal/catalog"
	"expensereport/internal/extractor"
	"expensereport/internal/models"
	"expensereport/internal/pdftext"
	"expensereport/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileTextExtractor returns canned text per file so individual receipts in
// a batch can succeed or fail independently.
type fileTextExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fileTextExtractor) ExtractText(pdfPath string) (string, error) {
	if err, ok := f.errs[pdfPath]; ok {
		return "", err
	}
	return f.texts[pdfPath], nil
}

func validRaw() models.RawExpense {
	return models.RawExpense{
		Date:     "2024-03-01",
		Merchant: "Hilton",
		Amount:   "300",
		GLCode:   catalog.CodeTravel,
	}
}

func TestProcessFilesSuccess(t *testing.T) {
	p := New(
		&pdftext.MockTextExtractor{MockText: "receipt text"},
		&extractor.MockExtractor{Raw: validRaw()},
		validate.New(nil, nil),
		2,
		nil,
	)

	files := []string{"a.pdf", "b.pdf", "c.pdf"}
	summary := p.ProcessFiles(context.Background(), files)

	require.Len(t, summary.Results, 3)
	assert.Empty(t, summary.Failed())
	assert.Len(t, summary.Records(), 3)
	assert.Equal(t, "3 of 3 receipts processed", summary.String())

	// Results come back in input order regardless of worker scheduling.
	for i, r := range summary.Results {
		assert.Equal(t, files[i], r.File)
	}
}

func TestProcessFilesPartialFailure(t *testing.T) {
	texts := &fileTextExtractor{
		texts: map[string]string{"good.pdf": "receipt"},
		errs:  map[string]error{"bad.pdf": errors.New("pdftotext exit 1")},
	}
	p := New(texts, &extractor.MockExtractor{Raw: validRaw()}, validate.New(nil, nil), 2, nil)

	summary := p.ProcessFiles(context.Background(), []string{"good.pdf", "bad.pdf"})

	require.Len(t, summary.Results, 2)
	assert.Len(t, summary.Records(), 1)

	failed := summary.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "bad.pdf", failed[0].File)
	assert.Contains(t, failed[0].Err.Error(), "text extraction")
	assert.Equal(t, "1 of 2 receipts processed", summary.String())
}

func TestProcessFilesExtractionFailure(t *testing.T) {
	p := New(
		&pdftext.MockTextExtractor{MockText: "receipt"},
		&extractor.MockExtractor{Err: errors.New("model unavailable")},
		validate.New(nil, nil),
		1,
		nil,
	)

	summary := p.ProcessFiles(context.Background(), []string{"a.pdf"})

	require.Len(t, summary.Failed(), 1)
	assert.Contains(t, summary.Failed()[0].Err.Error(), "field extraction")
}

func TestProcessFilesValidationFailure(t *testing.T) {
	raw := validRaw()
	raw.Date = "03/01/2024"
	p := New(
		&pdftext.MockTextExtractor{MockText: "receipt"},
		&extractor.MockExtractor{Raw: raw},
		validate.New(nil, nil),
		1,
		nil,
	)

	summary := p.ProcessFiles(context.Background(), []string{"a.pdf"})

	require.Len(t, summary.Failed(), 1)
	assert.Contains(t, summary.Failed()[0].Err.Error(), "validation")
}

func TestProcessFilesEmptyInput(t *testing.T) {
	p := New(
		&pdftext.MockTextExtractor{},
		&extractor.MockExtractor{Raw: validRaw()},
		validate.New(nil, nil),
		0,
		nil,
	)

	summary := p.ProcessFiles(context.Background(), nil)
	assert.Empty(t, summary.Results)
	assert.Equal(t, "0 of 0 receipts processed", summary.String())
}
