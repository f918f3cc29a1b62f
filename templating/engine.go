package templating

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/bracetpl/bindings"
	"github.com/byte4ever/bracetpl/stamper"
)

// ErrUnboundVariables is returned by a strict Engine when the template
// references variables that no source binds.
var ErrUnboundVariables = errors.New("unbound variables")

// Engine expands template files using stamp info files, binding files
// and explicit variables.
type Engine struct {
	// StampInfoFiles are "KEY VALUE" status files. Their keys form
	// the base context and feed single-brace {KEY} expansion of
	// variable values and imports.
	StampInfoFiles []string

	// BindingFiles are YAML or JSON documents flattened into dotted
	// keys. They override stamps.
	BindingFiles []string

	// Strict fails the expansion when the template references an
	// unbound variable instead of rendering it empty.
	Strict bool
}

// Expand reads a template, substitutes variables, and
// writes the result. If tplPath is empty it reads from
// stdin. If outPath is empty it writes to stdout. If
// executable is true the output file receives mode 0777
// instead of 0666.
//
// Processing order:
//  1. Load stamp files into a stamp map; it seeds the
//     context.
//  2. Merge binding files into the context.
//  3. For each variable NAME=VALUE, expand VALUE against
//     stamps using single-brace tags, then store as both
//     "NAME" and "variables.NAME" in context.
//  4. For each import NAME=filename, render the file
//     against context, then expand single-brace stamp
//     references, and store as "imports.NAME".
//  5. Render the template against context.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) (retErr error) {
	const errCtx = "expanding template"

	ctx, stamps, err := en.Context(vars, imports)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	root := Parse(string(tplContent))

	if err := en.checkBound(root, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, closer, err := en.openOutput(outPath, executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer func() {
			if closeErr := closer(); closeErr != nil && retErr == nil {
				retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
			}
		}()
	}

	if _, err := io.WriteString(out, Render(root, ctx)); err != nil {
		return fmt.Errorf("%s: writing output: %w", errCtx, err)
	}

	slog.Info(
		"expanded template",
		"template", tplPath,
		"output", outPath,
		"bindings", len(ctx),
		"stamps", len(stamps),
	)

	return nil
}

// Context builds the binding context Expand renders against. It also
// returns the stamp map on its own.
func (en *Engine) Context(
	vars []string,
	imports []string,
) (map[string]string, map[string]string, error) {
	const errCtx = "building context"

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	// Stamps form the base context; binding files,
	// variables and imports override them.
	ctx := make(map[string]string, len(stamps))
	bindings.Merge(ctx, stamps)

	fromFiles, err := bindings.LoadAll(en.BindingFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	bindings.Merge(ctx, fromFiles)

	if err := en.resolveVars(vars, stamps, ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveImports(imports, stamps, ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ctx, stamps, nil
}

// checkBound reports variables of root missing from ctx. They are
// logged, and in strict mode they become an error.
func (en *Engine) checkBound(
	root Node,
	ctx map[string]string,
) error {
	missing := Unbound(root, ctx)
	if len(missing) == 0 {
		return nil
	}

	if en.Strict {
		return fmt.Errorf(
			"%w: %s",
			ErrUnboundVariables, strings.Join(missing, ", "),
		)
	}

	slog.Warn(
		"unbound variables render empty",
		"variables", missing,
	)

	return nil
}

// resolveVars processes --variable flags. Each variable
// value is expanded against stamps using single-brace
// tags, then stored as both "NAME" and "variables.NAME".
func (en *Engine) resolveVars(
	vars []string,
	stamps map[string]string,
	ctx map[string]string,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		name, raw, ok := strings.Cut(vr, "=")
		if !ok {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val := stamper.Expand(raw, stamps)

		ctx[name] = val
		ctx["variables."+name] = val
	}

	return nil
}

// resolveImports processes --imports flags. Each import
// file is read, rendered against ctx, then expanded
// against stamps with single-brace tags, and stored as
// "imports.NAME".
func (en *Engine) resolveImports(
	imports []string,
	stamps map[string]string,
	ctx map[string]string,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		name, path, ok := strings.Cut(im, "=")
		if !ok {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, path, err,
			)
		}

		val := Execute(string(content), ctx)

		ctx["imports."+name] = stamper.Expand(val, stamps)
	}

	return nil
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout). An existing file keeps its
// mode unless executable is set.
func (en *Engine) openOutput(
	outPath string,
	executable bool,
) (io.Writer, func() error, error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	// OpenFile only applies perm when it creates the file.
	if executable {
		if err := fi.Chmod(perm); err != nil {
			_ = fi.Close() //nolint:errcheck // already failing
			return nil, nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}
	}

	return fi, func() error {
		if err := fi.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}

		return nil
	}, nil
}
