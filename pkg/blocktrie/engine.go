package blocktrie

import (
	"fmt"
	"io"
	"regexp"
)

// InitParams configures an Engine. All fields are copied at construction
// time; mutating a slice passed in after NewEngine returns has no effect.
type InitParams struct {
	Algo         Algo
	BlockSize    int
	FileMinSize  int64
	PathsScan    []string
	PathsExclude []string
	RXPatterns   []*regexp.Regexp
}

// Engine is single-threaded and synchronous: Run returns only when the
// scan completes, and there is no cancellation mechanism.
// Construct with NewEngine, scan with Run, read results with Begin/End.
// Not safe for concurrent use; a second Run call invalidates every
// Iterator and Accessor obtained from a prior one.
type Engine struct {
	algo         Algo
	blockSize    int
	fileMinSize  int64
	pathsScan    []string
	pathsExclude []string

	filter *filter
	br     *blockReader
	dg     *digester
	trie   *trie

	generation uint64
	diag       *diagnostics
}

// NewEngine validates params and constructs an Engine. It performs no
// filesystem access; all I/O happens in Run.
func NewEngine(p InitParams) (*Engine, error) {
	if p.BlockSize <= 0 {
		return nil, &ConfigError{Field: "block_size", Value: fmt.Sprint(p.BlockSize), Reason: "must be positive"}
	}
	if p.FileMinSize < 0 {
		return nil, &ConfigError{Field: "file_min_size", Value: fmt.Sprint(p.FileMinSize), Reason: "must be non-negative"}
	}
	if len(p.PathsScan) == 0 {
		return nil, &ConfigError{Field: "paths_scan", Value: "", Reason: "must name at least one path"}
	}
	dg, err := newDigester(p.Algo)
	if err != nil {
		return nil, err
	}

	pathsScan := append([]string(nil), p.PathsScan...)
	pathsExclude := append([]string(nil), p.PathsExclude...)
	patterns := append([]*regexp.Regexp(nil), p.RXPatterns...)

	return &Engine{
		algo:         p.Algo,
		blockSize:    p.BlockSize,
		fileMinSize:  p.FileMinSize,
		pathsScan:    pathsScan,
		pathsExclude: pathsExclude,
		filter:       newFilter(patterns, pathsExclude, p.FileMinSize),
		br:           newBlockReader(p.BlockSize),
		dg:           dg,
		trie:         newTrie(),
		diag:         newDiagnostics(),
	}, nil
}

// SetDiagnosticSink redirects per-path warnings and debug output. A nil
// writer discards them. The default, before any call, is os.Stderr.
func (e *Engine) SetDiagnosticSink(w io.Writer) {
	e.diag.setSink(w)
}

// SetVerbose sets the diagnostic detail level: 0 emits only warnings, 1
// adds per-root progress, 2 adds per-candidate accept/reject decisions.
// Levels above 2 add nothing further.
func (e *Engine) SetVerbose(level int) {
	e.diag.setLevel(level)
}

// SetDebugFlags enables named, independent debug toggles from a
// comma-separated "name" or "name:value" list.
func (e *Engine) SetDebugFlags(spec string) {
	e.diag.setFlags(spec)
}

func (e *Engine) warnf(format string, args ...interface{}) {
	e.diag.warnf(format, args...)
}

func (e *Engine) debugf(level int, format string, args ...interface{}) {
	e.diag.debugf(level, format, args...)
}

// Run clears the trie and rebuilds it from the configured scan roots.
// Per-path problems are reported to the diagnostic sink and do not fail
// the call; Run returns nil in every case. Any Iterator or Accessor
// obtained before this call is invalidated.
func (e *Engine) Run(recursive bool) error {
	e.generation++
	e.trie = newTrie()

	e.debugf(1, "hashing with %s, block size %d", e.dg.algo, e.blockSize)
	for _, root := range e.pathsScan {
		e.scanRoot(root, recursive)
	}
	return nil
}

func (e *Engine) insert(path string, size int64) {
	e.trie.insert(path, size, e.br, e.dg, func(msg string) { e.warnf("%s", msg) })
}

// digestCalls reports how many blocks have been hashed since
// construction. It exists to let tests verify the lazy-hashing
// guarantee without reaching into package-private fields from outside
// the package.
func (e *Engine) digestCalls() int {
	return e.dg.calls
}
