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

package jsonrpc

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync/atomic"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
)

// HTTPClient calls a jsonrpc.HTTPHandler over one POST URL, assigning
// each call a fresh numeric id. It wraps a plain *http.Client the same
// way the teacher's own outbound HTTP helper does, rather than reaching
// for a third-party HTTP client - there is nothing domain-specific to
// gain from one here.
type HTTPClient struct {
	http   *http.Client
	url    string
	nextID atomic.Int64
}

var (
	_ rpc.Client      = (*HTTPClient)(nil)
	_ rpc.AsyncClient = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client posting to url. hc may be nil to use
// http.DefaultClient.
func NewHTTPClient(url string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{http: hc, url: url}
}

func (c *HTTPClient) Call(ctx context.Context, method string, args []*serial.SI) (*serial.SI, error) {
	id := serial.NewInt64("", c.nextID.Add(1))
	body, err := EncodeRequest(method, args, id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "jsonrpc: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "jsonrpc: http call", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "jsonrpc: read response", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	result, rpcErr, _, err := DecodeReply(data)
	if err != nil {
		return nil, err
	}
	if rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}

func (c *HTTPClient) Begin(ctx context.Context, method string, args []*serial.SI) (*rpc.Call, error) {
	callCtx, cancel := context.WithCancel(ctx)
	call := rpc.NewCall(cancel)
	go func() {
		result, err := c.Call(callCtx, method, args)
		call.Resolve(result, err)
	}()
	return call, nil
}
