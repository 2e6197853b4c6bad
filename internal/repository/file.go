package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// FileRepository implements domain.ListRepository and
// domain.ReportRepository using file storage.
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.ListRepository = (*FileRepository)(nil)
var _ domain.ReportRepository = (*FileRepository)(nil)

// ReadCardList reads the raw card list text from a file.
func (r *FileRepository) ReadCardList(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s: %w", path, err)
		}
		return "", fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return string(body), nil
}

// StoreReport saves a generated report to a file in the given format
// ("json" or "yaml").
func (r *FileRepository) StoreReport(ctx context.Context, path string, report *domain.Report, format string) error {
	var body []byte
	var err error

	switch format {
	case "", "json":
		body, err = json.MarshalIndent(report, "", "   ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	case "yaml":
		body, err = yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", path, err)
	}

	r.log.Debug().Str("path", path).Int("results", len(report.Results)).Msg("stored report")
	return nil
}
