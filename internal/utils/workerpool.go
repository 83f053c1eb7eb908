// Package utils holds small infrastructure pieces shared across the
// networked server that don't belong to any single domain package.
package utils

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// WorkerFunction is the unit of work a WorkerPool dispatches to an idle
// worker goroutine.
type WorkerFunction = func(t *tomb.Tomb, task any) error

// WorkerPool runs up to n concurrent workers pulling tasks off a shared
// channel, supervised by a tomb.Tomb so the whole pool tears down cleanly
// when the tomb dies.
type WorkerPool struct {
	n     int
	tasks chan any
	work  WorkerFunction
}

// NewWorkerPool constructs a pool sized for size concurrent workers.
func NewWorkerPool(size int) WorkerPool {
	return WorkerPool{
		tasks: make(chan any, taskChanSize),
		n:     size,
	}
}

// AddTask enqueues a task for the next idle worker to pick up.
func (pool *WorkerPool) AddTask(task any) {
	pool.tasks <- task
}

// Setup keeps the pool topped up with n active workers, each running work,
// until t dies.
func (pool *WorkerPool) Setup(t *tomb.Tomb, work WorkerFunction) {
	log.Info().Int("activeWorkers", pool.n).Msg("adding workers")
	activeWorkers := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if activeWorkers < pool.n {
				t.Go(func() error {
					err := pool.worker(t, work)
					activeWorkers--
					return err
				})
				activeWorkers++
			}
		}
	}
}

// worker waits on a single task, actions it, and returns -- Setup
// immediately replaces it with a fresh worker goroutine while the pool stays
// under t.
func (pool *WorkerPool) worker(t *tomb.Tomb, work WorkerFunction) error {
	log.Debug().Msg("worker starting")
	select {
	case <-t.Dying():
		return nil
	case task := <-pool.tasks:
		if err := work(t, task); err != nil {
			log.Error().Err(err).Msg("worker exiting")
			return err
		}
	}
	return nil
}
