package service

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// TrainingProgress reports forest-build progress: one tick per completed
// tree, using the same progressbar/v3 + x/term interactivity detection the
// teacher uses for its own long-running operations.
type TrainingProgress struct {
	mu          sync.Mutex
	writer      io.Writer
	bar         *progressbar.ProgressBar
	interactive bool
	done        int64
}

// NewTrainingProgress creates a training progress reporter writing to writer
// (stderr if nil).
func NewTrainingProgress(writer io.Writer) *TrainingProgress {
	if writer == nil {
		writer = os.Stderr
	}
	return &TrainingProgress{
		writer:      writer,
		interactive: isInteractiveWriter(writer),
	}
}

// Start begins tracking progress toward nTrees completed tree builds.
func (p *TrainingProgress) Start(nTrees int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	atomic.StoreInt64(&p.done, 0)
	if !p.interactive {
		return
	}
	p.bar = progressbar.NewOptions(nTrees,
		progressbar.OptionSetDescription("training forest"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.writer) }),
	)
}

// TreeDone records one completed tree build. Safe to call concurrently
// from the forest's worker goroutines.
func (p *TrainingProgress) TreeDone() {
	atomic.AddInt64(&p.done, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish closes out the progress bar, if one was started.
func (p *TrainingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Completed returns the number of TreeDone calls observed so far.
func (p *TrainingProgress) Completed() int {
	return int(atomic.LoadInt64(&p.done))
}

func isInteractiveWriter(w io.Writer) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
