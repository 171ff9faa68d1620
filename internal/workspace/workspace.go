// Package workspace turns command-line arguments into parsed scripts.
//
// Arguments may name script files, directories (searched recursively for
// *.sh and *.leapsh files) or "-" for standard input. Parsing fans out over
// an errgroup with a concurrency limit; results keep argument order.
package workspace

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// Stdin is the argument that reads a script from standard input.
const Stdin = "-"

// Extensions lists the file extensions treated as scripts when walking
// directories.
var Extensions = []string{".sh", ".leapsh"}

// IsScript reports whether path has a script extension.
func IsScript(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// DisplayName returns the name to show for path in diagnostics.
func DisplayName(path string) string {
	if path == Stdin {
		return "<stdin>"
	}
	return path
}

// Expand resolves arguments to script paths. No arguments means the
// current directory. Files named explicitly are kept whatever their
// extension; hidden directories are skipped while walking.
func Expand(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if arg == Stdin {
			add(Stdin)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsScript(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}
	return paths, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// File is a script loaded into memory.
type File struct {
	Path   string
	Source string
}

// Name returns the display name of the file.
func (f File) Name() string {
	return DisplayName(f.Path)
}

// Read loads a script. The path "-" reads from stdin.
func Read(path string, stdin io.Reader) (File, error) {
	if path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return File{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return File{Path: path, Source: string(data)}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return File{Path: path, Source: string(data)}, nil
}

// Result is the outcome of parsing one file. Err holds the parse error,
// if any; Program is nil when Err is set.
type Result struct {
	File
	Program *core.Program
	Err     error
}

// Options controls ParseAll.
type Options struct {
	// Limit bounds concurrent parses. Zero means GOMAXPROCS.
	Limit int
	// Stdin is read for the "-" path. Nil means os.Stdin.
	Stdin io.Reader
	// Parser options applied to every file.
	Parser []parser.Option
}

// ParseAll reads and parses paths concurrently. A read failure aborts the
// whole run; parse failures are reported per file in Result.Err.
func ParseAll(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := Read(path, opts.Stdin)
			if err != nil {
				return err
			}
			results[i] = ParseFile(f, opts.Parser...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseFile parses a loaded file.
func ParseFile(f File, opts ...parser.Option) Result {
	prog, err := parser.ParseWithOptions(f.Source, opts...)
	return Result{File: f, Program: prog, Err: err}
}
