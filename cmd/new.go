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
	"fmt"
	"os"

	"github.com/k1LoW/slidefmt/md"
	"github.com/spf13/cobra"
)

var newOpts md.Options

var newCmd = &cobra.Command{
	Use:   "new [SLIDEV_FILE]",
	Short: "create new Slidev markdown",
	Long: `create new Slidev markdown with a deck frontmatter and a cover slide.

If a file is specified, the markdown is written to it. An existing file is not overwritten.
Otherwise the markdown is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		c, opts, err := newConverter(logger, newOpts)
		if err != nil {
			return err
		}
		title := opts.Title
		if title == "" {
			title = md.DefaultTitle
		}
		r := c.Convert(fmt.Sprintf("# %s\n\n---\n\n## Agenda\n\n- Topic\n", title), opts)
		if len(args) == 0 {
			_, err := fmt.Fprint(os.Stdout, r.Slides)
			return err
		}
		f := args[0]
		if _, err := os.Stat(f); err == nil {
			return fmt.Errorf("%s already exists", f)
		}
		if err := writeOutput(f, r.Slides); err != nil {
			return err
		}
		cmd.PrintErrf("Created %s\n", f)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newOpts.Title, "title", "t", "", "title of the presentation")
	newCmd.Flags().StringVarP(&newOpts.Theme, "theme", "", "", fmt.Sprintf("deck theme (%s)", themeNames()))
	newCmd.Flags().StringVarP(&newOpts.Author, "author", "a", "", "deck author")
	newCmd.Flags().StringVarP(&newOpts.Transition, "transition", "", "", fmt.Sprintf("deck transition (%s)", transitionNames()))
}
