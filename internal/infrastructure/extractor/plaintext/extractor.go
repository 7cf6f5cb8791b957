package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file as UTF-8, dropping undecodable bytes.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), "")), nil
}
