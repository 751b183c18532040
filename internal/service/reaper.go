//go:generate go run go.uber.org/mock/mockgen -source=reaper.go -destination=mocks/mock_reaper.go -package=mocks
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"chat_relay/internal/models"
	"chat_relay/internal/utils"
)

// StaleParticipants 由 Registry 實作
type StaleParticipants interface {
	ScanStale(ctx context.Context, now time.Time, timeout time.Duration) ([]models.Participant, error)
	Evict(ctx context.Context, name string) error
}

// StatusAnnouncer 由 MessageLog 實作
type StatusAnnouncer interface {
	AppendStatus(ctx context.Context, name, text string, at time.Time) (*models.Message, error)
}

// SweepReport 記錄一次清理的結果
type SweepReport struct {
	Stale       int
	Evicted     []string
	Skipped     []string // 已被其他週期移除
	Failed      []string
	Unannounced []string // 已移除但離開訊息寫入失敗
}

// Reaper 定期移除超過 timeout 沒有心跳的參與者並公告離開。
//
// 每次 tick 在獨立的 goroutine 執行清理，前一次尚未結束時允許重疊；
// 重疊的週期對同一參與者的 Evict 會得到 ErrParticipantNotFound，不會重複公告。
type Reaper struct {
	participants StaleParticipants
	announcer    StatusAnnouncer
	clock        utils.Clock
	interval     time.Duration
	timeout      time.Duration
	log          *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReaper(
	participants StaleParticipants,
	announcer StatusAnnouncer,
	clock utils.Clock,
	interval time.Duration,
	timeout time.Duration,
	log *slog.Logger,
) *Reaper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Reaper{
		participants: participants,
		announcer:    announcer,
		clock:        clock,
		interval:     interval,
		timeout:      timeout,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start 執行定期清理直到 ctx 取消或呼叫 Stop，會阻塞目前的 goroutine
func (r *Reaper) Start(ctx context.Context) {
	r.wg.Add(1)
	defer r.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.ctx, cancel)
	defer stop()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("Reaper started", "interval", r.interval, "timeout", r.timeout)

	for {
		select {
		case <-ticker.C:
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				_, _ = r.Sweep(ctx)
			}()
		case <-ctx.Done():
			r.log.Info("Reaper stopping")
			return
		}
	}
}

// Stop 停止計時器並等待進行中的清理結束
func (r *Reaper) Stop() {
	r.cancel()
	r.wg.Wait()
	r.log.Info("Reaper stopped")
}

// Sweep 執行一次清理。掃描失敗時放棄本次週期並回傳錯誤；
// 單一參與者的失敗不影響其他參與者。
func (r *Reaper) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	now := r.clock.Now()

	stale, err := r.participants.ScanStale(ctx, now, r.timeout)
	if err != nil {
		r.log.Error("Stale scan failed, skipping cycle", "err", err)
		return report, err
	}
	report.Stale = len(stale)

	for _, participant := range stale {
		r.reap(ctx, participant.Name, now, &report)
	}

	if len(report.Evicted) > 0 || len(report.Failed) > 0 {
		r.log.Info("Sweep finished",
			"stale", report.Stale,
			"evicted", len(report.Evicted),
			"failed", len(report.Failed))
	}
	return report, nil
}

func (r *Reaper) reap(ctx context.Context, name string, now time.Time, report *SweepReport) {
	if err := r.participants.Evict(ctx, name); err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			r.log.Debug("Participant already gone", "participant", name)
			report.Skipped = append(report.Skipped, name)
			return
		}
		r.log.Error("Failed to evict participant", "participant", name, "err", err)
		report.Failed = append(report.Failed, name)
		return
	}
	report.Evicted = append(report.Evicted, name)

	if _, err := r.announcer.AppendStatus(ctx, name, models.TextLeft, now); err != nil {
		r.log.Error("Failed to announce participant departure", "participant", name, "err", err)
		report.Unannounced = append(report.Unannounced, name)
	}
}
