package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/usestring/json2struct/internal/batch"
	"github.com/usestring/json2struct/internal/verify"
	"github.com/usestring/json2struct/pkg/contenttype"
	"github.com/usestring/json2struct/pkg/gostruct"
	"github.com/usestring/json2struct/pkg/ident"
	"github.com/usestring/json2struct/pkg/jsonschema"
	"github.com/usestring/json2struct/pkg/sample"
)

const (
	outputGo     = "go"
	outputSchema = "schema"

	stdinName = "-"
)

type genFlags struct {
	name     string
	selector string
	format   string
	tagKey   string
	indent   int
	gofmt    bool
	output   string
	verify   bool
	pkg      string
}

// input is one sample document to render.
type input struct {
	path string // file path, "-" for stdin
	data []byte
}

func newGenCmd(a *app) *cobra.Command {
	f := &genFlags{}

	cmd := &cobra.Command{
		Use:   "gen [FILE...]",
		Short: "Print a Go struct declaration for each sample file",
		Long: "gen reads each FILE (standard input when none is given or FILE is -) and prints\n" +
			"the Go struct declaration inferred from it. Files are processed concurrently\n" +
			"and printed in argument order.",
		Example: "  json2struct gen --name ChannelReply channel.json\n" +
			"  curl -s $URL | json2struct gen --select '.channels[0]' --gofmt\n" +
			"  json2struct gen --output schema config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("tag") {
				a.cfg.TagKey = f.tagKey
			}
			if cmd.Flags().Changed("indent") {
				a.cfg.IndentWidth = f.indent
			}
			if cmd.Flags().Changed("gofmt") {
				a.cfg.Gofmt = f.gofmt
			}
			return runGen(cmd.Context(), a, f, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.name, "name", "n", "", "root type name (default: derived from the file name, Root for stdin)")
	flags.StringVarP(&f.selector, "select", "s", "", "jq path expression selecting the value to type, e.g. .data.items[0]")
	flags.StringVarP(&f.format, "format", "f", "auto", "sample format: json, yaml or auto")
	flags.StringVar(&f.tagKey, "tag", "json", "struct tag key carrying the original key")
	flags.IntVar(&f.indent, "indent", 4, "spaces per nesting level, 0 for tabs")
	flags.BoolVar(&f.gofmt, "gofmt", false, "align field columns with gofmt")
	flags.StringVarP(&f.output, "output", "o", outputGo, "output kind: go or schema")
	flags.BoolVar(&f.verify, "verify", false, "check that each sample decodes into its declaration")
	flags.StringVarP(&f.pkg, "package", "p", "", "prefix Go output with this package clause")

	return cmd
}

func runGen(ctx context.Context, a *app, f *genFlags, args []string, stdin io.Reader, stdout io.Writer) error {
	if f.output != outputGo && f.output != outputSchema {
		return fmt.Errorf("unknown output %q (want %s or %s)", f.output, outputGo, outputSchema)
	}
	format, err := sample.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if f.pkg != "" {
		if err := gostruct.CheckPackageName(f.pkg); err != nil {
			return err
		}
	}
	emitter, err := gostruct.NewEmitter(&gostruct.Options{
		TagKey:      a.cfg.TagKey,
		IndentWidth: a.cfg.IndentWidth,
		Gofmt:       a.cfg.Gofmt,
	})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := readInput(path, stdin, a.cfg.MaxInputBytes)
		if err != nil {
			return err
		}
		inputs = append(inputs, input{path: path, data: data})
	}

	results, err := batch.Run(ctx, inputs, a.cfg.Workers, func(ctx context.Context, in input) (string, error) {
		return renderInput(in, f, format, a.cfg.TagKey, emitter)
	})
	if err != nil {
		return err
	}

	failed := 0
	var out strings.Builder
	if f.pkg != "" && f.output == outputGo {
		fmt.Fprintf(&out, "package %s\n\n", f.pkg)
	}
	for i, r := range results {
		if r.Err != nil {
			failed++
			if len(inputs) == 1 {
				// returned to the caller, which logs it
				continue
			}
			slog.Error("generation failed", slog.String("input", displayName(inputs[i].path)), slog.String("error", r.Err.Error()))
			continue
		}
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n\n") {
			out.WriteString("\n")
		}
		out.WriteString(r.Value)
	}
	if _, err := io.WriteString(stdout, out.String()); err != nil {
		return err
	}

	if failed > 0 {
		if len(inputs) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

// renderInput decodes one input and renders it as Go or JSON Schema.
func renderInput(in input, f *genFlags, format sample.Format, tagKey string, emitter *gostruct.Emitter) (string, error) {
	if format == sample.FormatAuto && in.path != stdinName {
		format = contenttype.FormatOfFile(in.path)
	}

	v, err := sample.Decode(in.data, format)
	if err != nil {
		return "", err
	}
	if f.selector != "" {
		if v, err = sample.Select(v, f.selector); err != nil {
			return "", err
		}
	}

	name := f.name
	if name == "" {
		name = typeNameFor(in.path)
	}

	if f.output == outputSchema {
		opts := jsonschema.DefaultInferOptions()
		opts.Title = ident.Convert(name)
		doc, err := json.MarshalIndent(jsonschema.FromSample(v, opts), "", "  ")
		if err != nil {
			return "", err
		}
		return string(doc) + "\n", nil
	}

	decl, err := emitter.Generate(v, name)
	if err != nil {
		return "", err
	}

	if f.verify {
		result, err := verify.Declaration(decl, v, tagKey)
		if err != nil {
			return "", fmt.Errorf("verifying declaration: %w", err)
		}
		if !result.Valid {
			return "", fmt.Errorf("sample does not decode into the declaration: %s", strings.Join(result.Errors, "; "))
		}
	}

	slog.Debug("generated declaration",
		slog.String("input", displayName(in.path)),
		slog.String("type", ident.Convert(name)),
	)
	return decl, nil
}

// readInput reads a file or, for "-", stdin, refusing more than limit bytes.
func readInput(path string, stdin io.Reader, limit int) ([]byte, error) {
	var r io.Reader = stdin
	if path != stdinName {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}

	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName(path), err)
	}
	if len(data) > limit {
		return nil, fmt.Errorf("%s: input exceeds %d bytes", displayName(path), limit)
	}
	return data, nil
}

// typeNameFor derives a root type name from a file path: the base name
// without extension, with characters that cannot appear in an identifier
// turned into word separators. Stdin is named Root.
func typeNameFor(path string) string {
	if path == stdinName {
		return "Root"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, base)
	trimmed := strings.TrimLeft(name, "_")
	if trimmed == "" || !unicode.IsLetter([]rune(trimmed)[0]) {
		return "Root"
	}
	return name
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}
