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

// Command rpcdemo serves and calls two remote procedures, echo and add,
// across every transport this module implements at once: XML-RPC and
// JSON-RPC over HTTP, JSON-RPC over a raw TCP connection, and the
// proprietary binary protocol.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github/sabouaram/reactorkit/rconsole"
)

func main() {
	root := newRootCommand()
	root.AddCommand(newServeCommand())
	root.AddCommand(newClientCommand())

	if err := root.Execute(); err != nil {
		_, _ = rconsole.Fprintln(os.Stderr, rconsole.RoleError, err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "rpcdemo",
		Short:         "Serve or call the echo/add demo procedures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func bindAddr(ip string, port int) string {
	return fmt.Sprintf("%s:%d", ip, port)
}
