package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"upright/internal/pipeline"
	"upright/internal/storage"
)

// Job is one input file to make upright and resize.
type Job struct {
	Input   string
	Options pipeline.Options
}

// Result reports the outcome of a Job. Err is nil on success.
type Result struct {
	Job    Job
	Output string
	Width  int
	Height int
	Size   int64
	Err    error
}

// Worker processes file jobs concurrently and writes outputs through store.
type Worker struct {
	store   *storage.Storage
	workers int
}

// NewWorker creates a worker pool with n goroutines; n < 1 means 1.
func NewWorker(store *storage.Storage, n int) *Worker {
	if n < 1 {
		n = 1
	}
	return &Worker{store: store, workers: n}
}

// Run processes jobs and returns one Result per job, in job order. Jobs not
// started before ctx is cancelled fail with ctx.Err().
func (w *Worker) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < min(w.workers, len(jobs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = w.process(ctx, idx, jobs[idx])
			}
		}()
	}

	log.Printf("Worker: started %d jobs on %d goroutines", len(jobs), min(w.workers, len(jobs)))
	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case <-ctx.Done():
			break feed
		case queue <- next:
		}
	}
	close(queue)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		results[i] = Result{Job: jobs[i], Err: ctx.Err()}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Printf("Worker: finished %d jobs, %d failed", len(jobs), failed)
	return results
}

func (w *Worker) process(ctx context.Context, id int, job Job) Result {
	res := Result{Job: job}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log.Printf("Worker: processing job %d for file %s", id, job.Input)

	f, err := os.Open(job.Input)
	if err != nil {
		res.Err = fmt.Errorf("open input: %w", err)
		log.Printf("Worker: job %d failed: %v", id, res.Err)
		return res
	}
	defer f.Close()

	out, err := pipeline.Process(f, job.Options)
	if err != nil {
		res.Err = err
		log.Printf("Worker: job %d failed: %v", id, err)
		return res
	}

	path, err := w.store.Save(job.Input, out.Width, out.Height, out.Format, out.Data)
	if err != nil {
		res.Err = err
		log.Printf("Worker: job %d failed: %v", id, err)
		return res
	}

	res.Output = path
	res.Width, res.Height = out.Width, out.Height
	res.Size = int64(len(out.Data))
	return res
}
