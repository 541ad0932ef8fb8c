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
	"os"
	"strings"

	"github.com/k1LoW/slidefmt/config"
	"github.com/k1LoW/slidefmt/md"
	"github.com/spf13/cobra"
)

var (
	convertOpts   md.Options
	convertOutput string
	convertStats  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [MARKDOWN_FILE]",
	Short: "convert plain markdown into Slidev markdown",
	Long:  `convert plain markdown into Slidev markdown. Every heading starts a new slide.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		var in string
		if len(args) == 1 {
			in = args[0]
		}
		c, opts, err := newConverter(logger, convertOpts)
		if err != nil {
			return err
		}
		src, err := readInput(cmd.Context(), logger, in)
		if err != nil {
			return err
		}
		res := c.Convert(src, opts)
		if err := writeOutput(convertOutput, res.Slides); err != nil {
			return err
		}
		logger.Info("converted file", slog.String("path", in), slog.Int("slides", res.Stats.TotalSlides))
		if convertStats {
			b, err := json.Marshal(res.Stats)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stderr, string(b))
		}
		return nil
	},
}

// newConverter builds a converter from the config of the current profile.
func newConverter(logger *slog.Logger, opts md.Options) (*md.Converter, md.Options, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, opts, err
	}
	c, err := md.New(md.WithRules(cfg.Rules...), md.WithLogger(logger))
	if err != nil {
		return nil, opts, err
	}
	return c, cfg.ConvertOptions(opts), nil
}

func themeNames() string {
	var names []string
	for _, t := range md.Themes {
		names = append(names, t.Value)
	}
	return strings.Join(names, ", ")
}

func transitionNames() string {
	var names []string
	for _, t := range md.Transitions {
		names = append(names, t.Value)
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOpts.Theme, "theme", "", "", fmt.Sprintf("deck theme (%s)", themeNames()))
	convertCmd.Flags().StringVarP(&convertOpts.Title, "title", "t", "", "deck title")
	convertCmd.Flags().StringVarP(&convertOpts.Author, "author", "a", "", "deck author")
	convertCmd.Flags().StringVarP(&convertOpts.Transition, "transition", "", "", fmt.Sprintf("deck transition (%s)", transitionNames()))
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default stdout)")
	convertCmd.Flags().BoolVarP(&convertStats, "stats", "", false, "print conversion stats as JSON to stderr")
}
