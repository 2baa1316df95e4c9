package ogcard

// Status is the outcome of a generation.
type Status int

const (
	// StatusPending means the generation has not finished yet.
	StatusPending Status = iota
	// StatusReady means SVG holds a normalized image.
	StatusReady
	// StatusEmpty means the pipeline succeeded but the engine produced no
	// markup.
	StatusEmpty
	// StatusFailed means a step failed; Err holds the cause.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is what Generate returns instead of an error. SVG is empty unless
// Status is StatusReady.
type Result struct {
	Status Status
	SVG    string
	Err    error
}

// OK reports whether the result carries an image.
func (r Result) OK() bool { return r.Status == StatusReady }

// Job is an in-flight asynchronous generation.
type Job struct {
	done   chan struct{}
	result Result
}

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result returns the outcome, or a StatusPending result if the job is still
// running. It never blocks.
func (j *Job) Result() Result {
	select {
	case <-j.done:
		return j.result
	default:
		return Result{Status: StatusPending}
	}
}

// Wait blocks until the job finishes.
func (j *Job) Wait() Result {
	<-j.done
	return j.result
}
