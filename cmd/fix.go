/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt"
	"github.com/k1LoW/slidefmt/config"
	"github.com/k1LoW/slidefmt/extract"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	fixWrite   bool
	fixExtract bool
	fixJSON    bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [MARKDOWN_FILE...]",
	Short: "normalize Slidev markdown and fall back to a sanitized single slide when it stays invalid",
	Long: `normalize Slidev markdown and fall back to a sanitized single slide when it stays invalid.

With --extract the input is treated as an assistant reply and the slides are extracted from it first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 && !fixWrite {
			return fmt.Errorf("multiple files require --write")
		}
		if len(args) == 0 {
			args = []string{stdinName}
		}
		cfg, err := config.Load(profile)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(fixWrite)
		if err != nil {
			return err
		}
		defer stop()
		p, err := slidefmt.NewProcessor(slidefmt.WithLogger(logger))
		if err != nil {
			return err
		}

		results := make([]*slidefmt.Result, len(args))
		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.SetLimit(runtime.NumCPU())
		for i, name := range args {
			eg.Go(func() error {
				res, err := fixFile(ctx, logger, p, cfg.Sentinel, name)
				if err != nil {
					logger.Error("failed to process file", slog.String("path", name), slog.String("error", err.Error()))
					return err
				}
				results[i] = res
				return nil
			})
		}
		err = eg.Wait()
		if fixWrite {
			logger.Info("completed")
		}
		if err != nil {
			return err
		}

		yellow := color.New(color.FgYellow)
		for i, res := range results {
			switch {
			case fixJSON:
				b, err := json.Marshal(res)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			case !fixWrite:
				if err := writeOutput(stdinName, res.Text); err != nil {
					return err
				}
			}
			if len(res.Errors) > 0 && !fixJSON {
				if res.Fixed {
					_, _ = yellow.Fprintf(os.Stderr, "%s: auto-corrected with a sanitized fallback\n", args[i])
				} else {
					_, _ = yellow.Fprintf(os.Stderr, "%s:\n", args[i])
				}
				for _, e := range res.Errors {
					_, _ = fmt.Fprintf(os.Stderr, "  %s\n", e)
				}
			}
		}
		return nil
	},
}

func fixFile(ctx context.Context, logger *slog.Logger, p *slidefmt.Processor, sentinel extract.Options, name string) (_ *slidefmt.Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	src, err := readInput(ctx, logger, name)
	if err != nil {
		return nil, err
	}
	in := src
	if fixExtract {
		in, err = extract.Slidev(src, sentinel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	res := p.Process(in)
	switch {
	case res.Fixed:
		logger.Info("fixed file", slog.String("path", name), slog.Int("errors", len(res.Errors)))
	case res.Text == src:
		logger.Info("unchanged file", slog.String("path", name))
	default:
		logger.Info("processed file", slog.String("path", name))
	}
	if fixWrite && name != stdinName && !isRemote(name) && res.Text != src && len(res.Text) > 0 {
		if err := writeOutput(name, res.Text); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().BoolVarP(&fixWrite, "write", "w", false, "write the result back to the source files")
	fixCmd.Flags().BoolVarP(&fixExtract, "extract", "x", false, "extract slides from an assistant reply before fixing")
	fixCmd.Flags().BoolVarP(&fixJSON, "json", "", false, "print results as JSON")
}
