package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cjsflat/internal/diag"
	"cjsflat/internal/source"
	"cjsflat/internal/trace"
)

// Bundle concatenates the outputs in dependency order, each preceded by a
// comment naming its module path.
func Bundle(res *Result) string {
	var sb strings.Builder
	for n, i := range res.Order {
		fr := &res.Files[i]
		if n > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "// %s\n", fr.Module)
		sb.WriteString(fr.Output)
	}
	return sb.String()
}

// WriteOutputs writes every output to dir under its module path. Write
// failures become IOWriteFileError diagnostics in the run bag; the paths
// written are returned in dependency order.
func WriteOutputs(ctx context.Context, res *Result, dir string) []string {
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "write", trace.ParentFrom(ctx))
	var written []string
	for _, i := range res.Order {
		fr := &res.Files[i]
		dst := filepath.Join(dir, filepath.FromSlash(fr.Module.String()))
		if err := writeFile(dst, fr.Output); err != nil {
			res.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: fr.FileID},
				fmt.Sprintf("failed to write %s: %v", dst, err)))
			continue
		}
		written = append(written, dst)
	}
	sp.End(fmt.Sprintf("%d files", len(written)))
	return written
}

// WriteBundle writes Bundle(res) to path.
func WriteBundle(ctx context.Context, res *Result, path string) error {
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "write", trace.ParentFrom(ctx))
	if err := writeFile(path, Bundle(res)); err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{},
			fmt.Sprintf("failed to write %s: %v", path, err)))
		sp.Fail(err)
		return err
	}
	sp.End(path)
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644) //nolint:gosec // сгенерированный JS
}
