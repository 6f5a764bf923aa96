package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/cart"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotRepository is the durable cart.Backend: one row per key,
// upserted whole on every save. Watch events fan out through an in-process
// hub, so contexts served by this process see each other's writes.
type CartSnapshotRepository struct {
	DB  *gorm.DB
	hub *cart.WatchHub
}

func NewCartSnapshotRepository(db *gorm.DB) *CartSnapshotRepository {
	return &CartSnapshotRepository{DB: db, hub: cart.NewWatchHub()}
}

func (r *CartSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var row entity.CartSnapshot
	err := r.DB.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

func (r *CartSnapshotRepository) Save(ctx context.Context, key string, data []byte, origin string) error {
	row := entity.CartSnapshot{Key: key, Data: data, UpdatedAt: time.Now()}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	r.hub.Publish(cart.Event{Key: key, Origin: origin})
	return nil
}

func (r *CartSnapshotRepository) Watch(key string) (<-chan cart.Event, func()) {
	return r.hub.Watch(key)
}
