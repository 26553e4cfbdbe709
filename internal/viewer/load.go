package viewer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/google/uuid"

	"panedeck/internal/jobs"
)

// LoadKind is the job kind of a file load.
const LoadKind = "viewer.load"

// tabWidth is how many columns a tab expands to.
const tabWidth = 4

// Loaded is the payload of a finished load. Owner identifies the viewer
// that asked for it; every other pane ignores it. Err is set when the load
// failed, and the same error fails the job.
type Loaded struct {
	Owner uuid.UUID
	Lexer string
	Lines [][]chroma.Token
	Err   error
}

// loadTask reads path and splits it into highlighted lines.
func loadTask(owner uuid.UUID, path string) jobs.Task {
	return func(ctx context.Context) (any, error) {
		fail := func(err error) (any, error) {
			return &Loaded{Owner: owner, Err: err}, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fail(fmt.Errorf("load %s: %w", path, err))
		}
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		lexer, lines, err := Highlight(filepath.Base(path), string(data))
		if err != nil {
			return fail(fmt.Errorf("highlight %s: %w", path, err))
		}
		return &Loaded{Owner: owner, Lexer: lexer, Lines: lines}, nil
	}
}

// Highlight tokenises text with the lexer matching filename, falling back to
// content analysis and then to plain text. Newlines are stripped from the
// returned lines and tabs are expanded.
func Highlight(filename, text string) (lexer string, lines [][]chroma.Token, err error) {
	l := lexers.Match(filename)
	if l == nil {
		l = lexers.Analyse(text)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	it, err := l.Tokenise(nil, text)
	if err != nil {
		return "", nil, err
	}
	lines = chroma.SplitTokensIntoLines(it.Tokens())
	for _, line := range lines {
		for i := range line {
			v := strings.TrimRight(line[i].Value, "\r\n")
			line[i].Value = strings.ReplaceAll(v, "\t", strings.Repeat(" ", tabWidth))
		}
	}
	return l.Config().Name, lines, nil
}
