package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with a local Tesseract installation.
// A client is created per call; gosseract clients are not safe for
// concurrent reuse and recognition is already serialized by the worker.
type TesseractEngine struct {
	languages []string
}

// NewTesseractEngine creates an engine for the given language string,
// e.g. "tha+eng".
func NewTesseractEngine(languages string) *TesseractEngine {
	langs := strings.Split(languages, "+")
	if len(langs) == 0 || languages == "" {
		langs = []string{"eng"}
	}
	return &TesseractEngine{languages: langs}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR and reports the mean word-level confidence.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return Result{}, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize: %w", err)
	}

	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var sum float64
		for _, b := range boxes {
			sum += b.Confidence
		}
		confidence = sum / float64(len(boxes))
	}

	return Result{Text: CleanText(text), Confidence: confidence}, nil
}
