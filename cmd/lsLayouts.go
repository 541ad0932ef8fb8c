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
	"os"
	"text/tabwriter"

	"github.com/k1LoW/slidefmt"
	"github.com/k1LoW/slidefmt/md"
	"github.com/spf13/cobra"
)

var (
	lsLayoutsThemes      bool
	lsLayoutsTransitions bool
	lsLayoutsJSON        bool
)

var lsLayoutsCmd = &cobra.Command{
	Use:   "ls-layouts",
	Short: "list Slidev layouts recognized by slidefmt",
	Long:  `list Slidev layouts recognized by slidefmt. With --themes or --transitions, list the theme or transition catalog instead.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		switch {
		case lsLayoutsThemes:
			if lsLayoutsJSON {
				return json.NewEncoder(os.Stdout).Encode(md.Themes)
			}
			for _, t := range md.Themes {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.Value, t.Label, t.Description)
			}
		case lsLayoutsTransitions:
			if lsLayoutsJSON {
				return json.NewEncoder(os.Stdout).Encode(md.Transitions)
			}
			for _, t := range md.Transitions {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", t.Value, t.Label)
			}
		default:
			if lsLayoutsJSON {
				return json.NewEncoder(os.Stdout).Encode(slidefmt.Layouts)
			}
			for _, l := range slidefmt.Layouts {
				_, _ = fmt.Fprintln(w, l)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsLayoutsCmd)
	lsLayoutsCmd.Flags().BoolVarP(&lsLayoutsThemes, "themes", "", false, "list themes")
	lsLayoutsCmd.Flags().BoolVarP(&lsLayoutsTransitions, "transitions", "", false, "list transitions")
	lsLayoutsCmd.Flags().BoolVarP(&lsLayoutsJSON, "json", "", false, "output as JSON")
	lsLayoutsCmd.MarkFlagsMutuallyExclusive("themes", "transitions")
}
