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
	"text/tabwriter"

	"github.com/k1LoW/slidefmt"
	"github.com/spf13/cobra"
)

var (
	lsPage string
	lsJSON bool
)

type slideInfo struct {
	Index  int    `json:"index"`
	Layout string `json:"layout,omitempty"`
	Title  string `json:"title,omitempty"`
	Lines  int    `json:"lines"`
}

var lsCmd = &cobra.Command{
	Use:   "ls [MARKDOWN_FILE]",
	Short: "list slides of Slidev markdown",
	Long:  `list slides of Slidev markdown with their layout and title.`,
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
		src, err := readInput(cmd.Context(), logger, in)
		if err != nil {
			return err
		}
		doc := slidefmt.Parse(src)
		pages, err := pageToPages(lsPage, len(doc.Slides))
		if err != nil {
			return err
		}
		var infos []*slideInfo
		for _, p := range pages {
			s := doc.Slides[p-1]
			infos = append(infos, &slideInfo{
				Index:  p,
				Layout: string(s.Layout()),
				Title:  s.Title(),
				Lines:  len(s.Content),
			})
		}
		if lsJSON {
			b, err := json.Marshal(infos)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range infos {
			layout := info.Layout
			if layout == "" {
				layout = "-"
			}
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", info.Index, layout, info.Title)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVarP(&lsPage, "page", "p", "", "pages to list (e.g. 1,3-5,-2,4-)")
	lsCmd.Flags().BoolVarP(&lsJSON, "json", "", false, "print slides as JSON")
}
