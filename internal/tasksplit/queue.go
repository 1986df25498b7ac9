package tasksplit

// Queue is the interface a runtime gives each ReadInternal/WriteInternal
// endpoint the splitter's output implies. The splitter itself never
// constructs one: it only emits QueueID values and
// read-policy tags in the Comp tree; wiring an id to an actual bounded
// channel is the runtime's job (see internal/runtimequeue for a
// demonstration SPSC implementation).
type Queue interface {
	// Push enqueues v, blocking if the queue is full.
	Push(v any)
	// Pop dequeues the next value. ok is false when the queue is both
	// empty and closed.
	Pop() (v any, ok bool)
	// TryPop dequeues without blocking; ok is false on an empty queue
	// regardless of closed state. Used by a JumpToConsumeOnEmpty reader.
	TryPop() (v any, ok bool)
	// Close marks the queue as done: no further Push calls are valid, and
	// Pop drains remaining buffered values before reporting !ok.
	Close()
}
