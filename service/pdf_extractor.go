package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/MunzurulAzam/microfinancce-ai/client"
	"github.com/MunzurulAzam/microfinancce-ai/utils"
)

// DocumentExtractor turns a statement PDF on disk into page text and raw
// table rows. The metrics engine never assumes extraction succeeds; a hard
// failure here degrades the whole pipeline to the zero triple.
type DocumentExtractor interface {
	Extract(path string) (text string, rows []utils.Row, err error)
}

type pdfExtractor struct {
	paddleClient    *client.PaddleClient
	tesseractClient *client.TesseractClient
}

func NewPDFExtractor(paddleClient *client.PaddleClient, tesseractClient *client.TesseractClient) DocumentExtractor {
	return &pdfExtractor{
		paddleClient:    paddleClient,
		tesseractClient: tesseractClient,
	}
}

// Word gaps below spaceGap are intra-word kerning; gaps above cellGap start
// a new table cell. Between the two, a plain space.
const (
	spaceGap = 1.0
	cellGap  = 12.0
)

// minEmbeddedTextLen is the threshold below which a PDF is treated as
// scanned and sent down the OCR path.
const minEmbeddedTextLen = 20

func (x *pdfExtractor) Extract(path string) (string, []utils.Row, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	var rows []utils.Row

	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		pageRows, err := p.GetTextByRow()
		if err != nil {
			log.Printf("text extraction failed on page %d of %s: %v", pageIndex, path, err)
			continue
		}

		for _, pageRow := range pageRows {
			cells := groupRowCells(pageRow.Content)
			if len(cells) == 0 {
				continue
			}
			textBuilder.WriteString(strings.Join(cells, " "))
			textBuilder.WriteString("\n")
			rows = append(rows, utils.Row(cells))
		}
	}

	text := textBuilder.String()

	// Little to no embedded text means a scanned statement; fall back to
	// page-image OCR the same way we would for a photographed document.
	if len(strings.TrimSpace(text)) < minEmbeddedTextLen {
		log.Printf("PDF %s seems to be scanned or has minimal text, attempting image-based OCR", path)
		ocrText, ocrErr := x.extractScanned(path)
		if ocrErr != nil {
			return text, rows, nil
		}
		return ocrText, rowsFromText(ocrText), nil
	}

	return text, rows, nil
}

// groupRowCells merges the positioned words of one text row into table
// cells, splitting wherever the horizontal gap is too wide to be spacing
// within a single column.
func groupRowCells(words []pdf.Text) []string {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells []string
	var cell strings.Builder
	prevEnd := sorted[0].X

	for i, w := range sorted {
		gap := w.X - prevEnd
		switch {
		case i > 0 && gap > cellGap:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		case i > 0 && gap > spaceGap:
			cell.WriteString(" ")
		}
		cell.WriteString(w.S)
		prevEnd = w.X + w.W
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	return cells
}

// extractScanned rasterizes the PDF's page images with pdfcpu and OCRs
// them, PaddleOCR first with Tesseract as fallback.
func (x *pdfExtractor) extractScanned(path string) (string, error) {
	tempDir, err := os.MkdirTemp("", "stmt_images")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, tempDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var combined strings.Builder
	pageCount := 0
	for _, name := range names {
		imgPath := filepath.Join(tempDir, name)

		pageText, ocrErr := x.paddleClient.ExtractTextFromFile(imgPath)
		if ocrErr != nil || len(strings.TrimSpace(pageText)) < 10 {
			pageText, ocrErr = x.tesseractClient.ExtractTextFromFile(imgPath)
		}
		if ocrErr != nil {
			log.Printf("OCR failed for page image %s: %v", name, ocrErr)
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
		pageCount++
	}

	if pageCount == 0 {
		return "", fmt.Errorf("no page image produced usable OCR text")
	}
	return combined.String(), nil
}

var cellSplitPattern = regexp.MustCompile(`\s{2,}|\t`)

// rowsFromText rebuilds table rows from OCR output, treating runs of two or
// more spaces as column boundaries.
func rowsFromText(text string) []utils.Row {
	var rows []utils.Row
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, utils.Row(cellSplitPattern.Split(line, -1)))
	}
	return rows
}
