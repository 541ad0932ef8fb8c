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
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/fatih/color"
	"github.com/k1LoW/slidefmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate [MARKDOWN_FILE...]",
	Short: "validate the structure of Slidev markdown",
	Long:  `validate the structure of Slidev markdown. It exits with a non-zero status when any file is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{stdinName}
		}
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()

		results := make([]*slidefmt.ValidationResult, len(args))
		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.SetLimit(runtime.NumCPU())
		for i, name := range args {
			eg.Go(func() error {
				src, err := readInput(ctx, logger, name)
				if err != nil {
					return err
				}
				results[i] = slidefmt.Validate(src)
				if results[i].OK {
					logger.Info("valid file", slog.String("path", name))
				} else {
					logger.Info("invalid file", slog.String("path", name), slog.Any("errors", results[i].Errors))
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		invalid := 0
		for i, r := range results {
			if !r.OK {
				invalid++
			}
			if validateJSON {
				b, err := json.Marshal(struct {
					Path string `json:"path"`
					*slidefmt.ValidationResult
				}{args[i], r})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				continue
			}
			cmd.Printf("%s ... ", args[i])
			if r.OK {
				green.Println("✓ OK")
				continue
			}
			red.Println("✗ INVALID")
			for _, e := range r.Errors {
				cmd.Printf("   %s\n", e)
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d file(s) invalid", invalid, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&validateJSON, "json", "", false, "print results as JSON")
}
