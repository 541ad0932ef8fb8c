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
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/k1LoW/exec"
	"github.com/k1LoW/slidefmt"
	"github.com/lestrrat-go/backoff/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	presentPort int
	presentOpen bool
)

var presentCmd = &cobra.Command{
	Use:   "present [SLIDEV_FILE]",
	Short: "start the Slidev dev server for Slidev markdown",
	Long:  `start the Slidev dev server (npx slidev) for Slidev markdown. The file is validated first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := args[0]
		logger, stop, err := newLogger(false)
		if err != nil {
			return err
		}
		defer stop()
		src, err := readInput(cmd.Context(), logger, f)
		if err != nil {
			return err
		}
		if r := slidefmt.Validate(src); !r.OK {
			yellow := color.New(color.FgYellow)
			yellow.Fprintf(os.Stderr, "%s has structural problems, run `slidefmt fix` to correct them\n", f)
			for _, e := range r.Errors {
				_, _ = fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
		}

		c := exec.CommandContext(cmd.Context(), "npx", "--yes", "@slidev/cli", f, "--port", strconv.Itoa(presentPort))
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		logger.Info("starting slidev", slog.String("path", f), slog.Int("port", presentPort))
		if err := c.Start(); err != nil {
			return fmt.Errorf("failed to start slidev: %w", err)
		}
		if presentOpen {
			url := fmt.Sprintf("http://localhost:%d/", presentPort)
			go func() {
				if err := waitReady(cmd.Context(), url); err != nil {
					logger.Error("failed to reach slidev", slog.String("url", url), slog.String("error", err.Error()))
					return
				}
				if err := browser.OpenURL(url); err != nil {
					logger.Error("failed to open browser", slog.String("url", url), slog.String("error", err.Error()))
				}
			}()
		}
		if err := c.Wait(); err != nil && cmd.Context().Err() == nil {
			return fmt.Errorf("slidev exited: %w", err)
		}
		return nil
	},
}

// waitReady polls url until it answers or the retries run out.
func waitReady(ctx context.Context, url string) error {
	client := &http.Client{Timeout: time.Second}
	policy := backoff.Exponential(
		backoff.WithMinInterval(200*time.Millisecond),
		backoff.WithMaxInterval(2*time.Second),
		backoff.WithJitterFactor(0.05),
		backoff.WithMaxRetries(30),
	)
	b := policy.Start(ctx)
	for backoff.Continue(b) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		res, err := client.Do(req)
		if err != nil {
			continue
		}
		_ = res.Body.Close()
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%s did not respond", url)
}

func init() {
	rootCmd.AddCommand(presentCmd)
	presentCmd.Flags().IntVarP(&presentPort, "port", "", 3030, "port of the dev server")
	presentCmd.Flags().BoolVarP(&presentOpen, "open", "", false, "open the presentation in the browser")
}
