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

package xmlrpc

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
)

// HTTPClient calls an xmlrpc.HTTPHandler over one POST URL. It wraps a
// plain *http.Client for the same reason jsonrpc.HTTPClient does.
type HTTPClient struct {
	http *http.Client
	url  string
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
	body, err := EncodeCall(method, args)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "xmlrpc: build request", err)
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "xmlrpc: http call", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "xmlrpc: read response", err)
	}

	result, rpcErr, err := DecodeResponse(data)
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
