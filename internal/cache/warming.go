package cache

import (
	"context"
	"sync"
	"time"

	"github.com/qolzam/telar-blog/internal/pkg/log"
)

// LoadFunc produces the value a warming job stores
type LoadFunc func(ctx context.Context) (interface{}, error)

// WarmingJob refreshes one cache key on an interval
type WarmingJob struct {
	Key        string
	Load       LoadFunc
	TTL        time.Duration
	LastUpdate time.Time
	LastError  error
}

// CacheWarmer keeps frequently read keys populated ahead of requests
type CacheWarmer struct {
	service  *GenericCacheService
	interval time.Duration

	mu   sync.Mutex
	jobs map[string]*WarmingJob

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewCacheWarmer creates a warmer that refreshes every job each interval
func NewCacheWarmer(service *GenericCacheService, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		service:  service,
		interval: interval,
		jobs:     make(map[string]*WarmingJob),
		stop:     make(chan struct{}),
	}
}

// AddJob registers key to be refreshed with load
func (cw *CacheWarmer) AddJob(key string, load LoadFunc, ttl time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.jobs[key] = &WarmingJob{Key: key, Load: load, TTL: ttl}
}

// Start runs one warming pass immediately, then one per interval until ctx ends or Stop is called.
// It does nothing when the cache is disabled or the interval is not positive.
func (cw *CacheWarmer) Start(ctx context.Context) {
	if !cw.service.IsEnabled() || cw.interval <= 0 {
		return
	}
	cw.wg.Add(1)
	go cw.loop(ctx)
}

// Stop ends the warming loop and waits for it to exit
func (cw *CacheWarmer) Stop() {
	select {
	case <-cw.stop:
	default:
		close(cw.stop)
	}
	cw.wg.Wait()
}

func (cw *CacheWarmer) loop(ctx context.Context) {
	defer cw.wg.Done()

	cw.WarmAll(ctx)

	ticker := time.NewTicker(cw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stop:
			return
		case <-ticker.C:
			cw.WarmAll(ctx)
		}
	}
}

// WarmAll runs every registered job once
func (cw *CacheWarmer) WarmAll(ctx context.Context) {
	cw.mu.Lock()
	jobs := make([]*WarmingJob, 0, len(cw.jobs))
	for _, job := range cw.jobs {
		jobs = append(jobs, job)
	}
	cw.mu.Unlock()

	for _, job := range jobs {
		err := cw.run(ctx, job)

		cw.mu.Lock()
		job.LastError = err
		if err == nil {
			job.LastUpdate = time.Now()
		}
		cw.mu.Unlock()
	}
}

func (cw *CacheWarmer) run(ctx context.Context, job *WarmingJob) error {
	data, err := job.Load(ctx)
	if err != nil {
		log.Warn("Cache warming load failed for key %s: %v", job.Key, err)
		return err
	}
	return cw.service.CacheData(ctx, job.Key, data, job.TTL)
}

// Status returns a snapshot of every job
func (cw *CacheWarmer) Status() []WarmingJob {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	out := make([]WarmingJob, 0, len(cw.jobs))
	for _, job := range cw.jobs {
		out = append(out, *job)
	}
	return out
}
