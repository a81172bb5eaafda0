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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github/sabouaram/reactorkit/rclient"
)

type clientFlags struct {
	ip         string
	httpPort   int
	binaryPort int
	jsonPort   int
	binary     bool
	jsonTCP    bool
	jsonHTTP   bool
	timeout    time.Duration
}

func newClientCommand() *cobra.Command {
	var f clientFlags

	cmd := &cobra.Command{
		Use:           "client",
		Short:         "Issue two add() calls in parallel against a running server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.ip, "host", "i", "127.0.0.1", "server address")
	fs.IntVarP(&f.httpPort, "http-port", "p", 7002, "HTTP port, for the xmlrpc and json-http protocols")
	fs.IntVarP(&f.binaryPort, "binary-port", "", 7003, "binary RPC port, used with --binary")
	fs.IntVarP(&f.jsonPort, "json-port", "", 7004, "JSON-RPC/TCP port, used with --json-tcp")
	fs.BoolVarP(&f.binary, "binary", "b", false, "call over the binary protocol")
	fs.BoolVarP(&f.jsonTCP, "json-tcp", "j", false, "call over JSON-RPC on a raw TCP connection")
	fs.BoolVarP(&f.jsonHTTP, "json-http", "J", false, "call over JSON-RPC on HTTP")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-call timeout (0 waits forever)")

	return cmd
}

func (f clientFlags) dialConfig() rclient.Config {
	cfg := rclient.Config{Timeout: f.timeout, DialTimeout: 5 * time.Second}
	switch {
	case f.binary:
		cfg.Protocol = rclient.BinaryRPC
		cfg.Address = bindAddr(f.ip, f.binaryPort)
	case f.jsonTCP:
		cfg.Protocol = rclient.JSONRPCTCP
		cfg.Address = bindAddr(f.ip, f.jsonPort)
	case f.jsonHTTP:
		cfg.Protocol = rclient.JSONRPCHTTP
		cfg.Address = fmt.Sprintf("http://%s/jsonrpc", bindAddr(f.ip, f.httpPort))
	default:
		cfg.Protocol = rclient.XMLRPCHTTP
		cfg.Address = fmt.Sprintf("http://%s/xmlrpc", bindAddr(f.ip, f.httpPort))
	}
	return cfg
}

// runClient dials two independent clients and calls add asynchronously on
// each, the same way the original demo runs two begin/end pairs in
// parallel to show that a call in flight on one connection never blocks
// the other.
func runClient(cmd *cobra.Command, f clientFlags) error {
	ctx := cmd.Context()
	cfg := f.dialConfig()

	client1, err := rclient.Dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("rpcdemo: dial client 1: %w", err)
	}
	defer func() { _ = client1.Close() }()

	client2, err := rclient.Dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("rpcdemo: dial client 2: %w", err)
	}
	defer func() { _ = client2.Close() }()

	call1, err := client1.Begin(ctx, "add", 5, 6)
	if err != nil {
		return fmt.Errorf("rpcdemo: begin add(5,6): %w", err)
	}
	call2, err := client2.Begin(ctx, "add", 1, 2)
	if err != nil {
		return fmt.Errorf("rpcdemo: begin add(1,2): %w", err)
	}

	endCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		endCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	result1, err := call1.End(endCtx)
	if err != nil {
		return fmt.Errorf("rpcdemo: end add(5,6): %w", err)
	}
	result2, err := call2.End(endCtx)
	if err != nil {
		return fmt.Errorf("rpcdemo: end add(1,2): %w", err)
	}

	sum1, err := result1.Float64()
	if err != nil {
		return fmt.Errorf("rpcdemo: decode add(5,6) result: %w", err)
	}
	sum2, err := result2.Float64()
	if err != nil {
		return fmt.Errorf("rpcdemo: decode add(1,2) result: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "add(5, 6) = %g\n", sum1)
	fmt.Fprintf(out, "add(1, 2) = %g\n", sum2)
	return nil
}
