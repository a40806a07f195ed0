// Package scheduler runs periodic background jobs against the object store.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/driveline/vehicle-inspection-api/databases"
	"github.com/driveline/vehicle-inspection-api/storage"
)

// Scheduler audits the object store for keys no longer referenced by any
// vehicle or inspection document. The job only reports; deletion is left to
// an operator so a mid-flight upload is never removed.
type Scheduler struct {
	cron     *cron.Cron
	VDB      databases.VehicleDatabase
	IDB      databases.InspectionDatabase
	Storage  storage.ObjectStorage
	schedule string
}

// NewScheduler creates a scheduler running the audit on the given cron
// schedule. An empty schedule disables the job.
func NewScheduler(vDB databases.VehicleDatabase, iDB databases.InspectionDatabase, store storage.ObjectStorage, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		VDB:      vDB,
		IDB:      iDB,
		Storage:  store,
		schedule: schedule,
	}
}

// Start registers the audit job and begins the cron loop.
func (s *Scheduler) Start() {
	if s.schedule == "" {
		zap.S().Info("storage audit schedule not set, scheduler disabled")
		return
	}

	_, err := s.cron.AddFunc(s.schedule, s.auditOrphanKeys)
	if err != nil {
		zap.S().Errorw("failed to register storage audit job", "error", err, "schedule", s.schedule)
		return
	}

	s.cron.Start()
	zap.S().Infow("storage audit scheduler started", "schedule", s.schedule)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("storage audit scheduler stopped")
}

// auditOrphanKeys walks the bucket and logs every key that no document references.
func (s *Scheduler) auditOrphanKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	zap.S().Info("running storage audit job")

	referenced, err := s.referencedKeys(ctx)
	if err != nil {
		zap.S().Errorw("failed to collect referenced storage keys", "error", err)
		return
	}

	stored, err := s.Storage.ListKeys(ctx, "")
	if err != nil {
		zap.S().Errorw("failed to list storage keys", "error", err)
		return
	}

	orphans := 0
	for _, key := range stored {
		if _, ok := referenced[key]; !ok {
			orphans++
			zap.S().Warnw("orphaned storage key", "key", key)
		}
	}

	zap.S().Infow("storage audit complete",
		"storedKeys", len(stored),
		"referencedKeys", len(referenced),
		"orphanedKeys", orphans,
	)
}

// referencedKeys gathers every storage key held by a vehicle or inspection document.
func (s *Scheduler) referencedKeys(ctx context.Context) (map[string]struct{}, error) {
	keys := make(map[string]struct{})

	vehicles, err := s.VDB.Find(ctx, bson.M{"carImageKey": bson.M{"$nin": []interface{}{nil, ""}}})
	if err != nil {
		return nil, err
	}
	for _, v := range vehicles {
		if v.CarImageKey != "" {
			keys[v.CarImageKey] = struct{}{}
		}
	}

	inspections, err := s.IDB.Find(ctx, bson.M{"images.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, err
	}
	for _, insp := range inspections {
		for _, img := range insp.Images {
			if img.OriginalImageKey != "" {
				keys[img.OriginalImageKey] = struct{}{}
			}
			if img.AnalysedImageKey != "" {
				keys[img.AnalysedImageKey] = struct{}{}
			}
		}
	}

	return keys, nil
}
