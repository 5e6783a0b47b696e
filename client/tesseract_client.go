package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient wraps Tesseract OCR for scanned statement pages.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractTextFromFile runs Tesseract OCR over a page image on disk.
func (tc *TesseractClient) ExtractTextFromFile(imagePath string) (string, error) {
	c := gosseract.NewClient()
	defer c.Close()

	c.SetTessdataPrefix(tc.dataPath)

	// English plus Bengali: mobile-money statements mix both scripts.
	if err := c.SetLanguage("eng", "ben"); err != nil {
		// Bengali traineddata may not be installed; English alone still works.
		if err := c.SetLanguage("eng"); err != nil {
			return "", fmt.Errorf("failed to set language: %w", err)
		}
	}

	if err := c.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}
