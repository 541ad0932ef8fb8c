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
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt/md"
	"github.com/spf13/cobra"
)

const watchDebounce = 200 * time.Millisecond

var (
	watchOpts   md.Options
	watchOutput string
)

var watchCmd = &cobra.Command{
	Use:   "watch [MARKDOWN_FILE]",
	Short: "convert markdown into Slidev markdown every time it changes",
	Long:  `convert markdown into Slidev markdown every time it changes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		if watchOutput == "" {
			return fmt.Errorf("--output is required")
		}
		if filepath.Clean(src) == filepath.Clean(watchOutput) {
			return fmt.Errorf("--output must differ from the source file")
		}
		logger, stop, err := newLogger(true)
		if err != nil {
			return err
		}
		defer stop()
		c, opts, err := newConverter(logger, watchOpts)
		if err != nil {
			return err
		}
		return watch(cmd.Context(), logger, src, func() error {
			in, err := readInput(cmd.Context(), logger, src)
			if err != nil {
				return err
			}
			res := c.Convert(in, opts)
			if err := writeOutput(watchOutput, res.Slides); err != nil {
				return err
			}
			logger.Info("converted file", slog.String("path", src), slog.Int("slides", res.Stats.TotalSlides))
			return nil
		})
	},
}

// watch runs fn once and then after every change of path until ctx is done.
func watch(ctx context.Context, logger *slog.Logger, path string, fn func() error) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// watch the directory so that editors replacing the file are noticed
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	run := func() {
		if err := fn(); err != nil {
			logger.Error("failed to convert file", slog.String("path", path), slog.String("error", err.Error()))
		}
		logger.Info("watching", slog.String("path", path))
	}
	run()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("completed")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOpts.Theme, "theme", "", "", fmt.Sprintf("deck theme (%s)", themeNames()))
	watchCmd.Flags().StringVarP(&watchOpts.Title, "title", "t", "", "deck title")
	watchCmd.Flags().StringVarP(&watchOpts.Author, "author", "a", "", "deck author")
	watchCmd.Flags().StringVarP(&watchOpts.Transition, "transition", "", "", fmt.Sprintf("deck transition (%s)", transitionNames()))
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file")
}
