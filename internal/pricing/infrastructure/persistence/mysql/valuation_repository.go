package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

const insertBatchSize = 500

type valuationRepository struct {
	db *gorm.DB
}

// NewValuationRepository 创建并返回估值历史仓储实例。
func NewValuationRepository(db *gorm.DB) domain.ValuationRepository {
	return &valuationRepository{db: db}
}

// SaveBatch 批量写入一批估值记录。
func (r *valuationRepository) SaveBatch(ctx context.Context, records []domain.ValuationRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]ValuationModel, 0, len(records))
	for _, rec := range records {
		models = append(models, toValuationModel(rec))
	}
	return r.db.WithContext(ctx).CreateInBatches(models, insertBatchSize).Error
}

// ListByBatch 查询一个批次的全部估值记录。
func (r *valuationRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.ValuationRecord, error) {
	var models []ValuationModel
	if err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]domain.ValuationRecord, 0, len(models))
	for _, m := range models {
		records = append(records, toValuationRecord(m))
	}
	return records, nil
}
