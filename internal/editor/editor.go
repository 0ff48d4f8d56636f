package editor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/composer"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/layout"
)

// Editor executes commands against a document and its composer. All
// mutation flows through Execute, which serializes batches and coalesces
// change notifications so observers see one burst per batch.
type Editor struct {
	ctx     *EditContext
	metrics *Metrics
	log     zerolog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for command execution.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) {
		e.log = log
	}
}

// WithLayout sets the layout provider commands use for line-based caret
// movement. The default is a newline-based provider over the document.
func WithLayout(p layout.Provider) Option {
	return func(e *Editor) {
		e.ctx.Layout = p
	}
}

// New creates an editor over the given document and composer.
func New(doc *document.Document, comp *composer.Composer, opts ...Option) *Editor {
	e := &Editor{
		ctx: &EditContext{
			Document: doc,
			Composer: comp,
			Layout:   layout.NewLineProvider(doc),
		},
		metrics: &Metrics{},
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}
	e.ctx.Log = e.log

	return e
}

// Context returns the edit context shared with commands. Direct reads
// through the context are fine; mutations must go through Execute.
func (e *Editor) Context() *EditContext {
	return e.ctx
}

// Metrics returns the editor's execution metrics.
func (e *Editor) Metrics() *Metrics {
	return e.metrics
}

// Execute runs the given commands as one transaction. Document and
// selection notifications are held for the duration and released as a
// single coalesced burst. The editor is single-threaded: callers must
// not invoke Execute concurrently or from inside a command.
func (e *Editor) Execute(cmds ...Command) Result {
	start := time.Now()

	e.ctx.Document.Notifier().Hold()
	e.ctx.Composer.Notifier().Hold()
	defer e.ctx.Composer.Notifier().Release()
	defer e.ctx.Document.Notifier().Release()

	tx := &Transaction{}
	for _, cmd := range cmds {
		if err := cmd.Execute(e.ctx, tx); err != nil {
			e.log.Error().
				Err(err).
				Str("command", fmt.Sprintf("%T", cmd)).
				Msg("command failed")
			res := Result{Status: StatusError, Err: err, Edits: tx.Edits()}
			e.metrics.Record(res.Status, time.Since(start))
			return res
		}
	}

	res := Result{Edits: tx.Edits()}
	if len(res.Edits) == 0 {
		res.Status = StatusNoOp
	}

	e.log.Debug().
		Int("commands", len(cmds)).
		Int("edits", len(res.Edits)).
		Stringer("status", res.Status).
		Msg("executed batch")
	e.metrics.Record(res.Status, time.Since(start))

	return res
}
