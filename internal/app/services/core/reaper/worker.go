package reaper

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/utils"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	fallbackCronSpec      = "@hourly"
	fallbackLeaderLockTTL = 5 * time.Minute
)

// Worker removes provisional walk-in patients whose booking never landed.
// Only one instance runs a sweep at a time.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	patients     contracts.PatientRepository
	appointments contracts.AppointmentRepository
	provisioning contracts.ProvisioningService
	now          func() time.Time
	stop         chan struct{}
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	patientRepository contracts.PatientRepository,
	appointmentRepository contracts.AppointmentRepository,
	provisioningService contracts.ProvisioningService,
) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		patients:     patientRepository,
		appointments: appointmentRepository,
		provisioning: provisioningService,
		now:          time.Now,
		stop:         make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.Reaper.CronSpec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reaper.worker: invalid cron spec, falling back",
			zap.String("cron_spec", w.cfg.Reaper.CronSpec),
			zap.String("fallback", fallbackCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop halts the schedule and waits for a running sweep to return.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) int {
	ttl := w.leaderLockTTL()
	acquired, token, err := w.locker.TryLock(ctx, constvars.ReaperLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("reaper.worker: leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("reaper.worker: leader lock not acquired; another instance is running")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.ReaperLeaderLockKey, token); err != nil {
			w.log.Warn("reaper.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLock(refreshCtx, token, ttl)

	return w.sweep(ctx)
}

// leaderLockTTL never returns a non-positive duration; the refresh ticker
// panics on one.
func (w *Worker) leaderLockTTL() time.Duration {
	ttl := time.Duration(w.cfg.Reaper.LeaderLockTTLInSeconds) * time.Second
	if ttl <= 0 {
		w.log.Warn("reaper.worker: invalid leader lock TTL, using fallback",
			zap.Int("ttl_in_seconds", w.cfg.Reaper.LeaderLockTTLInSeconds),
			zap.Duration("fallback", fallbackLeaderLockTTL),
		)
		return fallbackLeaderLockTTL
	}
	return ttl
}

func (w *Worker) refreshLock(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.ReaperLeaderLockKey, token, ttl); err != nil {
				w.log.Warn("reaper.worker: failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}

// sweep discards every provisional patient past the grace period that has
// no appointment, and returns how many were removed.
func (w *Worker) sweep(ctx context.Context) int {
	patients, err := w.patients.FindAll(ctx)
	if err != nil {
		w.log.Warn("reaper.worker: listing patients failed", zap.Error(err))
		return 0
	}

	grace := time.Duration(w.cfg.Reaper.GracePeriodInMinutes) * time.Minute
	cutoff := w.now().Add(-grace)
	removed := 0

	for _, patient := range patients {
		if ctx.Err() != nil {
			break
		}
		if !utils.IsProvisionalPatientID(patient.ID) || patient.HasAuthAccount {
			continue
		}
		if patient.CreatedAt.IsZero() || patient.CreatedAt.After(cutoff) {
			continue
		}

		appointments, err := w.appointments.FindAllByPatient(ctx, patient.ID)
		if err != nil {
			w.log.Warn("reaper.worker: listing appointments failed",
				zap.String(constvars.LoggingPatientIDKey, patient.ID),
				zap.Error(err),
			)
			continue
		}
		if len(appointments) > 0 {
			continue
		}

		if err := w.provisioning.Discard(ctx, patient.ID); err != nil {
			w.log.Warn("reaper.worker: discarding orphan failed",
				zap.String(constvars.LoggingPatientIDKey, patient.ID),
				zap.Error(err),
			)
			continue
		}
		removed++
		w.log.Info("reaper.worker: discarded orphaned walk-in patient",
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Time("created_at", patient.CreatedAt),
		)
	}

	w.log.Info("reaper.worker: sweep finished",
		zap.Int("scanned", len(patients)),
		zap.Int("removed", removed),
	)
	return removed
}
