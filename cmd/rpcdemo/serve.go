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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/rconfig"
	"github/sabouaram/reactorkit/rconsole"
)

type serveFlags struct {
	ip         string
	httpPort   int
	binaryPort int
	jsonPort   int
	config     string
}

func newServeCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Expose echo/add over every transport at once",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.ip, "bind-ip", "i", "127.0.0.1", "address to bind")
	fs.IntVarP(&f.httpPort, "http-port", "p", 7002, "HTTP port for XML-RPC (/xmlrpc) and JSON-RPC (/jsonrpc)")
	fs.IntVarP(&f.binaryPort, "binary-port", "b", 7003, "binary RPC port")
	fs.IntVarP(&f.jsonPort, "json-port", "j", 7004, "JSON-RPC/TCP port")
	fs.StringVarP(&f.config, "config", "c", "", "rconfig file overriding the above bind flags (yaml/json/toml)")

	return cmd
}

// resolve turns f into the httpd.Config plus binary/json addresses
// startDemoServersAddr needs, preferring a loaded --config file over the
// individual bind flags when one is given.
func (f serveFlags) resolve() (httpd.Config, string, string, error) {
	if f.config == "" {
		return httpd.Config{Bindable: bindAddr(f.ip, f.httpPort)},
			bindAddr(f.ip, f.binaryPort),
			bindAddr(f.ip, f.jsonPort),
			nil
	}

	cfg, err := rconfig.LoadFile(f.config)
	if err != nil {
		return httpd.Config{}, "", "", fmt.Errorf("rpcdemo: load config: %w", err)
	}
	if len(cfg.HTTPD) == 0 {
		return httpd.Config{}, "", "", fmt.Errorf("rpcdemo: %s: no httpd entry configured", f.config)
	}

	httpCfg, err := cfg.HTTPD[0].Build()
	if err != nil {
		return httpd.Config{}, "", "", fmt.Errorf("rpcdemo: build httpd config: %w", err)
	}

	return httpCfg, cfg.RPC.BinaryAddress, cfg.RPC.JSONAddress, nil
}

func runServe(cmd *cobra.Command, f serveFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpCfg, binAddr, jsonAddr, err := f.resolve()
	if err != nil {
		return err
	}

	d, err := startDemoServersAddr(ctx, httpCfg, binAddr, jsonAddr)
	if err != nil {
		return err
	}
	defer d.close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "xmlrpc/jsonrpc listening on http://%s\n", d.http.Addr().String())
	fmt.Fprintf(out, "binary RPC listening on %s\n", d.bin.Addr().String())
	fmt.Fprintf(out, "json-rpc/tcp listening on %s\n", d.json.Addr().String())

	errs := d.run(ctx)

	<-ctx.Done()
	_, _ = rconsole.Fprintln(out, rconsole.RoleWarn, "rpcdemo: shutting down")

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil && ctx.Err() == nil {
			return err
		}
	}
	return nil
}
