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
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1LoW/exec"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
)

var exportFormats = []string{"pdf", "png", "pptx", "md"}

var exportCmd = &cobra.Command{
	Use:   "export [SLIDEV_FILE]",
	Short: "export Slidev markdown with the Slidev CLI",
	Long:  `export Slidev markdown to PDF, PNG, PPTX or markdown with the Slidev CLI (npx slidev export).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := args[0]
		format, err := exportFormatOf(exportOut, exportFormat)
		if err != nil {
			return err
		}
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		c := exec.CommandContext(cmd.Context(), "npx", "--yes", "@slidev/cli", "export", f, "--format", format, "--output", exportOut)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		logger.Info("exporting", slog.String("path", f), slog.String("format", format), slog.String("output", exportOut))
		if err := c.Run(); err != nil {
			return fmt.Errorf("failed to export %s: %w", f, err)
		}
		return nil
	},
}

// exportFormatOf returns the explicit format or the one implied by the output extension.
func exportFormatOf(out, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	for _, f := range exportFormats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (%s)", format, strings.Join(exportFormats, ", "))
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "slides.pdf", "output file")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "", "", "export format (pdf, png, pptx, md). Defaults to the extension of --out")
}
