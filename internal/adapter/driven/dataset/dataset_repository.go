package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/domain/repository"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// DatasetRepositoryImpl implementa o DatasetRepository para arquivos locais e objetos S3.
type DatasetRepositoryImpl struct {
	s3 *s3Source
}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
func NewDatasetRepository() repository.DatasetRepository {
	return &DatasetRepositoryImpl{
		s3: newS3Source(),
	}
}

// LoadDataset carrega o dataset uma única vez. Um caminho inexistente falha
// imediatamente com ErrFileNotFound.
func (r *DatasetRepositoryImpl) LoadDataset(ctx context.Context, source types.DatasetSource) (*entity.Dataset, error) {
	path := strings.TrimSpace(source.Path)
	if path == "" {
		path = types.DefaultDataFile
	}

	var (
		reader io.ReadCloser
		err    error
	)
	if isS3URI(path) {
		reader, err = r.s3.open(ctx, path, source.Profile, source.Region)
	} else {
		reader, err = openLocalFile(path)
	}
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return parseDataset(path, reader)
}

func openLocalFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("error accessing dataset file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset file: %w", err)
	}
	return file, nil
}
