package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolutionTask is one unit of background work: produce the next answer
// for a conversation.
type ResolutionTask struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	Problem        string
	// ForceAI skips the knowledge base; set when the user rejected its answer.
	ForceAI bool
}

type TaskProcessor interface {
	Process(ctx context.Context, task ResolutionTask)
}

// Dispatcher runs resolution tasks on a fixed pool of workers fed by a
// bounded channel. Tasks of the same conversation may run concurrently.
type Dispatcher struct {
	processor TaskProcessor
	workers   int
	tasks     chan ResolutionTask

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

func NewDispatcher(processor TaskProcessor, workers, queueSize int, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		processor: processor,
		workers:   workers,
		tasks:     make(chan ResolutionTask, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.Named("dispatcher"),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(i)
	}
	d.logger.Info("Dispatcher started", zap.Int("workers", d.workers), zap.Int("queue_size", cap(d.tasks)))
}

func (d *Dispatcher) run(worker int) {
	defer d.wg.Done()
	for task := range d.tasks {
		d.logger.Debug("Processing task",
			zap.Int("worker", worker),
			zap.String("conversation_id", task.ConversationID.String()),
			zap.Bool("force_ai", task.ForceAI),
		)
		d.processor.Process(d.ctx, task)
	}
}

// Enqueue never blocks. It fails with ErrQueueFull when every slot is taken.
func (d *Dispatcher) Enqueue(task ResolutionTask) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrQueueStopped
	}

	select {
	case d.tasks <- task:
		return nil
	default:
		d.logger.Warn("Resolution queue full, rejecting task",
			zap.String("conversation_id", task.ConversationID.String()),
		)
		return ErrQueueFull
	}
}

// Stop drains the queued tasks and waits for the workers, or gives up and
// cancels in-flight work when ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.tasks)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		d.logger.Warn("Dispatcher stopped before the queue drained")
		return ctx.Err()
	}
}
