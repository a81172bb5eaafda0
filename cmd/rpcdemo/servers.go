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

	"github/sabouaram/reactorkit/binrpc"
	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/jsonrpc"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/xmlrpc"
)

// demoServers owns the three listeners rpcdemo exposes echo/add through
// over four transports: one httpd.Server carrying both the xmlrpc and
// jsonrpc HTTP routes, and
// one reactor.Selector each for the binary and JSON-RPC/TCP servers (each
// Server.Serve drives its own selector, so they cannot share one).
type demoServers struct {
	registry *rpc.Registry

	http *httpd.Server

	binSel *reactor.Selector
	bin    *binrpc.Server

	jsonSel *reactor.Selector
	json    *jsonrpc.TCPServer
}

func registerDemoProcedures(reg *rpc.Registry) error {
	if err := reg.Register("echo", func(s string) (string, error) { return s, nil }); err != nil {
		return err
	}
	return reg.Register("add", func(a, b float64) (float64, error) { return a + b, nil })
}

// startDemoServers binds all three listeners and begins accepting on each.
// Callers must call run to drive the binary/json-tcp accept loops and
// close once done.
func startDemoServers(ctx context.Context, ip string, httpPort, binaryPort, jsonPort int) (*demoServers, error) {
	return startDemoServersAddr(ctx, httpd.Config{Bindable: bindAddr(ip, httpPort)}, bindAddr(ip, binaryPort), bindAddr(ip, jsonPort))
}

// startDemoServersAddr is startDemoServers generalized over a full
// httpd.Config (so a loaded rconfig.HTTPDConfig, TLS included, can drive
// the HTTP listener) and literal "host:port" addresses for the other two
// transports.
func startDemoServersAddr(ctx context.Context, httpCfg httpd.Config, binAddr, jsonAddr string) (*demoServers, error) {
	reg := rpc.NewRegistry()
	if err := registerDemoProcedures(reg); err != nil {
		return nil, err
	}

	d := &demoServers{registry: reg}

	d.http = httpd.New(httpCfg, nil)
	if err := d.http.Route("xmlrpc", `^/xmlrpc$`, xmlrpc.NewHTTPHandler(reg).Route()); err != nil {
		return nil, fmt.Errorf("rpcdemo: route xmlrpc: %w", err)
	}
	if err := d.http.Route("jsonrpc", `^/jsonrpc$`, jsonrpc.NewHTTPHandler(reg).Route()); err != nil {
		return nil, fmt.Errorf("rpcdemo: route jsonrpc: %w", err)
	}
	if err := d.http.Start(ctx); err != nil {
		return nil, fmt.Errorf("rpcdemo: start http: %w", err)
	}

	binSel, err := reactor.New()
	if err != nil {
		d.close()
		return nil, fmt.Errorf("rpcdemo: create binary selector: %w", err)
	}
	d.binSel = binSel

	d.bin, err = binrpc.NewServer(binSel, binAddr, reg, nil)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("rpcdemo: start binary server: %w", err)
	}

	jsonSel, err := reactor.New()
	if err != nil {
		d.close()
		return nil, fmt.Errorf("rpcdemo: create json-tcp selector: %w", err)
	}
	d.jsonSel = jsonSel

	d.json, err = jsonrpc.NewTCPServer(jsonSel, jsonAddr, reg, nil)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("rpcdemo: start json-tcp server: %w", err)
	}

	return d, nil
}

// run drives the binary and json-tcp accept loops until ctx is done,
// reporting either loop's terminal error on the returned channel.
func (d *demoServers) run(ctx context.Context) <-chan error {
	errs := make(chan error, 2)
	go func() { errs <- d.bin.Serve(ctx) }()
	go func() { errs <- d.json.Serve(ctx) }()
	return errs
}

func (d *demoServers) close() {
	if d.http != nil {
		_ = d.http.Stop(context.Background())
	}
	if d.bin != nil {
		_ = d.bin.Close()
	}
	if d.binSel != nil {
		_ = d.binSel.Close()
	}
	if d.json != nil {
		_ = d.json.Close()
	}
	if d.jsonSel != nil {
		_ = d.jsonSel.Close()
	}
}
