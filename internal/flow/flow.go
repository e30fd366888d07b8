// Package flow implements the parallel dataflow runtime the condenser
// stages, the Wikidata extract/filter passes and the connect stage are
// built on: typed
// producer→processor→consumer pipelines connected by bounded channels,
// with multi-worker fan-out on the processor stage and a deterministic
// finish step run exactly once per worker.
//
// Grounded on original_source/lab/src/parallel.rs: channel capacity, thread
// naming scheme, and the producer/processor/consumer role split all mirror
// that file directly.
package flow

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ChannelCapacity is the bounded channel capacity used between every stage.
// Sending blocks the upstream stage when full — the sole backpressure
// mechanism (spec §4.1, §5); there is no drop and no unbounded queue.
const ChannelCapacity = 100

// Flow is a running pipeline: an errgroup joining every spawned stage
// goroutine and propagating the first unrecoverable error, plus the
// logger every stage tags its thread name onto.
type Flow struct {
	ctx    context.Context
	group  *errgroup.Group
	logger *logrus.Logger
}

// New starts a Flow bound to ctx. Cancelling ctx (or any stage returning an
// error) cancels every other stage cooperatively.
func New(ctx context.Context, logger *logrus.Logger) *Flow {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	group, gctx := errgroup.WithContext(ctx)
	return &Flow{ctx: gctx, group: group, logger: logger}
}

// NewChannel allocates a bounded channel. A non-positive capacity defaults
// to ChannelCapacity.
func NewChannel[T any](capacity int) chan T {
	if capacity <= 0 {
		capacity = ChannelCapacity
	}
	return make(chan T, capacity)
}

// ProducerFunc owns a source and emits messages to out, returning when
// exhausted. The caller is responsible for not closing out itself; Spawn
// functions own channel lifecycle.
type ProducerFunc[T any] func(ctx context.Context, out chan<- T) error

// SpawnProducer runs fn in its own goroutine tagged "fprod-<name>",
// closing out when fn returns.
func SpawnProducer[T any](f *Flow, name string, fn ProducerFunc[T], out chan T) {
	f.group.Go(func() error {
		defer close(out)
		entry := f.logger.WithField("thread", "fprod-"+name)
		entry.Debug("producer starting")
		if err := fn(f.ctx, out); err != nil {
			entry.WithError(err).Error("producer failed")
			return fmt.Errorf("flow: producer %s: %w", name, err)
		}
		entry.Debug("producer finished")
		return nil
	})
}

// SpawnProducers runs n independent instances of fn concurrently, all
// writing to the same out channel, which closes once every instance has
// returned. Useful when one logical source is split across several input
// files read in parallel.
func SpawnProducers[T any](f *Flow, name string, n int, fn ProducerFunc[T], out chan T) {
	if n <= 0 {
		n = 1
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		f.group.Go(func() error {
			defer wg.Done()
			entry := f.logger.WithField("thread", fmt.Sprintf("fprod-%s-%d", name, i))
			entry.Debug("producer starting")
			if err := fn(f.ctx, out); err != nil {
				entry.WithError(err).Error("producer failed")
				return fmt.Errorf("flow: producer %s[%d]: %w", name, i, err)
			}
			entry.Debug("producer finished")
			return nil
		})
	}
	f.group.Go(func() error {
		wg.Wait()
		close(out)
		return nil
	})
}

// Processor is a stateful worker: Process handles one input, possibly
// emitting zero or more outputs; Finish runs exactly once after the input
// channel closes and may flush accumulated state (spec §4.1).
type Processor[In, Out any] interface {
	Process(in In, out chan<- Out) error
	Finish(out chan<- Out) error
}

// ProcessorFactory constructs one Processor instance per worker, so each
// worker keeps its own private, non-shared collector state.
type ProcessorFactory[In, Out any] func() Processor[In, Out]

// SpawnProcessors runs n worker goroutines pulling from in and writing to
// out, each with its own Processor instance from factory. n<=0 defaults to
// runtime.NumCPU() (spec §4.1: "N defaults to the number of CPU cores").
// Processing errors are logged and the worker continues with the next
// message (spec §4.1: "a malformed record never kills the pipeline");
// Finish errors are treated as unrecoverable and abort the stage.
func SpawnProcessors[In, Out any](f *Flow, name string, n int, factory ProcessorFactory[In, Out], in <-chan In, out chan Out) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		f.group.Go(func() error {
			defer wg.Done()
			entry := f.logger.WithField("thread", fmt.Sprintf("fproc-%s-%d", name, i))
			proc := factory()
			entry.Debug("processor worker starting")
			for {
				select {
				case <-f.ctx.Done():
					return f.ctx.Err()
				case item, ok := <-in:
					if !ok {
						if err := proc.Finish(out); err != nil {
							entry.WithError(err).Error("processor finish failed")
							return fmt.Errorf("flow: processor %s finish: %w", name, err)
						}
						entry.Debug("processor worker finished")
						return nil
					}
					if err := proc.Process(item, out); err != nil {
						entry.WithError(err).Warn("processor step failed, record skipped")
					}
				}
			}
		})
	}
	f.group.Go(func() error {
		wg.Wait()
		close(out)
		return nil
	})
}

// Consumer is a terminal sink: Consume handles one input; Finish runs
// exactly once after every upstream worker has closed the channel (spec
// §4.1).
type Consumer[T any] interface {
	Consume(in T) error
	Finish() error
}

// SpawnConsumer runs c in its own goroutine tagged "fcons-<name>",
// draining in until it closes, then calling c.Finish().
func SpawnConsumer[T any](f *Flow, name string, c Consumer[T], in <-chan T) {
	f.group.Go(func() error {
		entry := f.logger.WithField("thread", "fcons-"+name)
		entry.Debug("consumer starting")
		for {
			select {
			case <-f.ctx.Done():
				return f.ctx.Err()
			case item, ok := <-in:
				if !ok {
					if err := c.Finish(); err != nil {
						entry.WithError(err).Error("consumer finish failed")
						return fmt.Errorf("flow: consumer %s finish: %w", name, err)
					}
					entry.Debug("consumer finished")
					return nil
				}
				if err := c.Consume(item); err != nil {
					entry.WithError(err).Warn("consumer step failed, record skipped")
				}
			}
		}
	})
}

// Join blocks until every spawned stage has returned, yielding the first
// unrecoverable error (if any). A malformed record never reaches Join as an
// error — only Finish failures, producer failures, and context
// cancellation do (spec §4.1: "Unrecoverable errors ... surface as
// process-exit errors").
func (f *Flow) Join() error {
	return f.group.Wait()
}
