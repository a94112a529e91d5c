package renderer

import (
	"context"
	"sync"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile Tile
	Seed int64
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	wg          sync.WaitGroup
}

// Worker renders tiles and accumulates its own traversal statistics
type Worker struct {
	ID       int
	renderer *TileRenderer
	stats    core.TraversalStats
}

// NewWorkerPool creates a pool of numWorkers workers sharing one tile
// renderer. Queues are buffered for maxTasks tiles so submission never blocks.
func NewWorkerPool(renderer *TileRenderer, numWorkers, maxTasks int) *WorkerPool {
	numWorkers = max(1, numWorkers)
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
	}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, renderer: renderer})
	}
	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, wp.taskQueue, wp.resultQueue, &wp.wg)
	}
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Stop closes the task queue and waits for workers to drain it
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Results returns the channel of completed tiles
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.workers)
}

// TraversalStats sums the workers' traversal statistics. Call after Stop.
func (wp *WorkerPool) TraversalStats() core.TraversalStats {
	var total core.TraversalStats
	for _, w := range wp.workers {
		total.Merge(w.stats)
	}
	return total
}

// run is the main worker loop. Once the context is cancelled, remaining
// tasks are drained and reported with the context error.
func (w *Worker) run(ctx context.Context, tasks <-chan TileTask, results chan<- TileResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- TileResult{TileID: task.Tile.ID, Error: err}
			continue
		}

		sampler := core.NewRandomSampler(task.Tile.Random(task.Seed))
		stats, err := w.renderer.RenderTile(ctx, task.Tile, sampler, &w.stats)
		results <- TileResult{TileID: task.Tile.ID, Stats: stats, Error: err}
	}
}
