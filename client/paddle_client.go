package client

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

// PaddleClient wraps PaddleOCR for text extraction from statement page
// images. It runs both English and Bengali models and merges the results.
type PaddleClient struct {
	enModelDir string
	bnModelDir string
}

// NewPaddleClient creates a new PaddleOCR client
// It loads model paths from environment variables
func NewPaddleClient() *PaddleClient {
	enModelDir := os.Getenv("PADDLE_OCR_EN_MODEL_DIR")
	bnModelDir := os.Getenv("PADDLE_OCR_BN_MODEL_DIR")

	if enModelDir == "" {
		enModelDir = "/opt/paddleocr/models/en"
	}
	if bnModelDir == "" {
		bnModelDir = "/opt/paddleocr/models/bn"
	}

	log.Printf("PaddleOCR initialized with EN model: %s, BN model: %s", enModelDir, bnModelDir)

	return &PaddleClient{
		enModelDir: enModelDir,
		bnModelDir: bnModelDir,
	}
}

// ExtractTextFromFile extracts text from a page image using PaddleOCR
func (p *PaddleClient) ExtractTextFromFile(imagePath string) (string, error) {
	enText, err := p.runPaddleOCR(imagePath, "en", p.enModelDir)
	if err != nil {
		log.Printf("English PaddleOCR failed: %v", err)
	}

	bnText, err := p.runPaddleOCR(imagePath, "bn", p.bnModelDir)
	if err != nil {
		log.Printf("Bengali PaddleOCR failed: %v", err)
	}

	mergedText := mergeAndDeduplicate(enText, bnText)

	if mergedText == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from image")
	}

	log.Printf("PaddleOCR extracted %d characters (EN: %d, BN: %d)",
		len(mergedText), len(enText), len(bnText))

	return mergedText, nil
}

// runPaddleOCR executes PaddleOCR Python CLI for a specific language
func (p *PaddleClient) runPaddleOCR(imagePath, lang, modelDir string) (string, error) {
	cmd := exec.Command("python3", "-c", fmt.Sprintf(`
import sys
from paddleocr import PaddleOCR
import warnings
warnings.filterwarnings('ignore')

ocr = PaddleOCR(
    use_angle_cls=True,
    lang='%s',
    det_model_dir='%s/det',
    rec_model_dir='%s/rec',
    cls_model_dir='%s/cls',
    use_gpu=False,
    show_log=False
)

result = ocr.ocr('%s', cls=True)
if result and result[0]:
    for line in result[0]:
        if line and len(line) > 1:
            print(line[1][0])
`, lang, modelDir, modelDir, modelDir, imagePath))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("PaddleOCR command failed: %v, stderr: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

// mergeAndDeduplicate combines the per-language OCR results and removes
// duplicate lines
func mergeAndDeduplicate(texts ...string) string {
	seen := make(map[string]bool)
	var result []string

	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			normalized := strings.ToLower(line)
			if !seen[normalized] {
				seen[normalized] = true
				result = append(result, line)
			}
		}
	}

	return strings.Join(result, "\n")
}
