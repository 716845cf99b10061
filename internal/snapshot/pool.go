package snapshot

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Task func(ctx context.Context) Result

type Result struct {
	Page string
	Path string
	Err  error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. An
// optional limiter spaces out task starts across all workers.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	limiter *rate.Limiter
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// SetRateLimit allows at most rps task starts per second; rps <= 0 removes
// the limit. Call before Run.
func (p *WorkerPool) SetRateLimit(rps float64) {
	if p == nil {
		return
	}
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel is closed once Close has been
// called and every task has finished, or ctx is done.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					res := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
