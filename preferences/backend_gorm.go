package preferences

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// GormBackend persists preference entries as key-value rows.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Load(ctx context.Context) (map[string]string, error) {
	var records []models.PreferenceRecord
	result := b.db.WithContext(ctx).Find(&records)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("load preferences", result.Error)
	}

	values := make(map[string]string, len(records))
	for _, record := range records {
		values[record.Key] = record.Value
	}
	return values, nil
}

func (b *GormBackend) Save(ctx context.Context, key, value string) error {
	record := models.PreferenceRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	result := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record)
	if result.Error != nil {
		return errors.NewDatabaseError("save preference "+key, result.Error)
	}
	return nil
}
