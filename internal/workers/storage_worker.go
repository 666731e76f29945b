package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/repositories"
)

// StorageReconcileWorker periodically recomputes each user's stored-usage
// counter from the item table. The counter is incremented atomically on
// upload and delete, but a crashed transaction or manual DB surgery can
// still leave it drifting; the worker pulls it back to the truth.
type StorageReconcileWorker struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	itemRepo repositories.ItemRepository
	interval time.Duration
}

func NewStorageReconcileWorker(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
	interval time.Duration,
) *StorageReconcileWorker {
	return &StorageReconcileWorker{
		db:       db,
		userRepo: userRepo,
		itemRepo: itemRepo,
		interval: interval,
	}
}

func (w *StorageReconcileWorker) Start(ctx context.Context) {
	go w.reconcileLoop(ctx)
}

func (w *StorageReconcileWorker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("storage reconcile worker stopped")
			return
		case <-ticker.C:
			w.reconcileOnce()
		}
	}
}

func (w *StorageReconcileWorker) reconcileOnce() {
	usage, err := w.itemRepo.SumFileSizeGroupedByUser(w.db)
	if err != nil {
		logger.Error("storage reconcile: usage query failed", "error", err)
		return
	}

	users, err := w.userRepo.ListAll(w.db)
	if err != nil {
		logger.Error("storage reconcile: user scan failed", "error", err)
		return
	}

	var fixed int
	for i := range users {
		actual := usage[users[i].ID]
		if users[i].CurrentStorageUsedMB == actual {
			continue
		}
		if err := w.userRepo.SetStorageUsage(w.db, users[i].ID, actual); err != nil {
			logger.Error("storage reconcile: update failed", "user_id", users[i].ID, "error", err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		logger.Info("storage reconcile corrected drifted counters", "users", fixed)
	}
}
