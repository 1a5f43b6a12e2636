package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"
)

// WorkerPool runs session events on a fixed set of workers. Every job of a
// session lands on the same worker, so a session's events run in order.
type WorkerPool struct {
	shards []chan Job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(workerCount, queueSize int, handle Handler, log *zap.SugaredLogger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		shards: make([]chan Job, workerCount),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	for i := range pool.shards {
		pool.shards[i] = make(chan Job, queueSize)
		worker := &Worker{
			ID:      i,
			JobChan: pool.shards[i],
			Wg:      &pool.wg,
			Handle:  handle,
			Log:     log,
		}
		pool.wg.Add(1)
		worker.Start(pool.ctx)
	}
	return pool
}

// AddJob queues job on its session's worker. Droppable jobs are discarded
// when the worker is busy; others wait for room. It reports whether the job
// was queued.
func (p *WorkerPool) AddJob(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	shard := p.shards[p.shardFor(job.SessionID)]
	if job.Droppable() {
		select {
		case shard <- job:
			return true
		default:
			p.log.Debugw("dropping job, worker busy", "type", job.Type, "session", job.SessionID)
			return false
		}
	}
	select {
	case shard <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) shardFor(sessionID string) int {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(p.shards)))
}

// Shutdown stops accepting jobs and waits for queued ones to finish.
func (p *WorkerPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, shard := range p.shards {
		close(shard)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
