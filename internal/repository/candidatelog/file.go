package candidatelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go-hiring-assistant/internal/domain"
)

const DefaultPath = "data/candidates.json"

// fileRepository serializes appends within the process. Separate processes
// sharing the file can still race and lose records.
type fileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) domain.CandidateLogRepository {
	if path == "" {
		path = DefaultPath
	}
	return &fileRepository{path: path}
}

func (r *fileRepository) Append(ctx context.Context, record domain.CandidateRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("encode candidate log: %w", err)
	}
	return r.writeAtomic(data)
}

func (r *fileRepository) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileRepository) load() ([]domain.CandidateRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.CandidateRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read candidate log: %w", err)
	}
	return decodeRecords(data, r.path), nil
}

func (r *fileRepository) writeAtomic(data []byte) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create candidate log dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".candidates-*.json")
	if err != nil {
		return fmt.Errorf("create temp candidate log: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write candidate log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close candidate log: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace candidate log: %w", err)
	}
	return nil
}
