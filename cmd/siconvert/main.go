/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command siconvert converts a serialized value between the intermediate
// representation's formats: binary, XML (with or without attributes),
// JSON, CSV, properties, and URL query strings (input only).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github/sabouaram/reactorkit/rconsole"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = rconsole.Fprintln(os.Stderr, rconsole.RoleError, err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "siconvert [file]",
		Short:         "Convert a serialized value between formats",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runConvert(cmd, f, path)
		},
	}

	f.bind(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, f flags, path string) error {
	in, err := f.inputFormat()
	if err != nil {
		return err
	}
	out, err := f.outputFormat()
	if err != nil {
		return err
	}

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("siconvert: read input: %w", err)
	}

	if f.verbose {
		_, _ = rconsole.Fprintf(os.Stderr, rconsole.RoleProgress, "siconvert: decoding %d bytes as %s\n", len(data), in)
	}

	si, err := decode(in, f, data)
	if err != nil {
		return fmt.Errorf("siconvert: decode: %w", err)
	}

	si = applyWindow(si, f.skip, f.num)

	if out == formatCount {
		fmt.Fprintln(cmd.OutOrStdout(), countOf(si))
		return nil
	}

	body, err := encode(out, f, si)
	if err != nil {
		return fmt.Errorf("siconvert: encode: %w", err)
	}

	if f.verbose {
		_, _ = rconsole.Fprintf(os.Stderr, rconsole.RoleProgress, "siconvert: writing %d bytes as %s\n", len(body), out)
	}

	return writeOutput(f.output, body)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, body []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(body)
		return err
	}
	return os.WriteFile(path, body, 0o644)
}
