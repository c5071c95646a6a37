package sim

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cellsoup/cell"
)

// parallelThreshold is the minimum cell count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// cellRef pairs a live cell with its entity for the update pass.
type cellRef struct {
	entity ecs.Entity
	cell   *cell.Cell
}

// workChunk is a range of cells for a worker to update.
type workChunk struct {
	start, end int
	dt         float32
}

// parallelState holds the persistent worker pool for cell updates.
type parallelState struct {
	refs       []cellRef
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelState{
		numWorkers: workers,
		refs:       make([]cellRef, 0, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *parallelState) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.updateChunk(chunk.start, chunk.end, chunk.dt)
			p.doneChan <- struct{}{}
		}
	}
}

// updateChunk advances a range of cells. Cells share no mutable state, so
// disjoint ranges can run concurrently.
func (p *parallelState) updateChunk(i0, i1 int, dt float32) {
	for i := i0; i < i1; i++ {
		p.refs[i].cell.Update(dt)
	}
}

// updateCells snapshots the live cells and advances each by dt, on the
// worker pool once the population is large enough.
func (w *World) updateCells(dt float32) {
	p := w.parallel
	p.refs = p.refs[:0]

	query := w.filter.Query()
	for query.Next() {
		_, _, org := query.Get()
		if org.Cell == nil || !org.Cell.Alive() {
			continue
		}
		p.refs = append(p.refs, cellRef{entity: query.Entity(), cell: org.Cell})
	}

	n := len(p.refs)
	if n == 0 {
		return
	}
	if n < parallelThreshold || p.numWorkers == 1 {
		p.updateChunk(0, n, dt)
		return
	}

	p.startWorkers()
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		p.workChan <- workChunk{start: start, end: end, dt: dt}
		dispatched++
	}
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
