package repository

import (
	"context"

	"github.com/diillson/sales-dashboard-go/internal/domain/entity"
	"github.com/diillson/sales-dashboard-go/internal/shared/types"
)

// DatasetRepository defines how the sales dataset is loaded.
type DatasetRepository interface {
	// LoadDataset lê o arquivo tabular (caminho local ou s3://bucket/key).
	LoadDataset(ctx context.Context, source types.DatasetSource) (*entity.Dataset, error)
}
