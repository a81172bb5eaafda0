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

package rpc

import (
	"context"
	"fmt"
	"reflect"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

var (
	errType = reflect.TypeOf((*error)(nil)).Elem()
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// ServiceProcedure binds a procedure name to an arbitrary Go function,
// collapsing the arity-specific template family a C++ RPC service would
// need (one instantiation per argument count) into a single reflective
// caller: any func(args...) (R, error), func(args...) error or
// func(args...) R is acceptable, and a leading context.Context
// parameter is recognized and fed from the call's context rather than
// from a wire argument.
type ServiceProcedure struct {
	name     string
	fn       reflect.Value
	fnType   reflect.Type
	wantsCtx bool
	hasErr   bool
	hasVal   bool
}

func newServiceProcedure(name string, fn any) (*ServiceProcedure, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, rerr.Newf(rerr.KindLogic, "rpc: procedure %q is not a function", name)
	}
	rt := rv.Type()
	if rt.NumOut() > 2 {
		return nil, rerr.Newf(rerr.KindLogic, "rpc: procedure %q returns too many values", name)
	}

	p := &ServiceProcedure{name: name, fn: rv, fnType: rt}
	if rt.NumIn() > 0 && rt.In(0) == ctxType {
		p.wantsCtx = true
	}
	switch rt.NumOut() {
	case 0:
	case 1:
		if rt.Out(0) == errType {
			p.hasErr = true
		} else {
			p.hasVal = true
		}
	case 2:
		if rt.Out(1) != errType {
			return nil, rerr.Newf(rerr.KindLogic, "rpc: procedure %q's second return value must be error", name)
		}
		p.hasVal = true
		p.hasErr = true
	}
	return p, nil
}

// NumArgs reports how many wire arguments the procedure expects, not
// counting a leading context.Context.
func (p *ServiceProcedure) NumArgs() int {
	n := p.fnType.NumIn()
	if p.wantsCtx {
		n--
	}
	return n
}

// BeginCall returns one empty argument placeholder per wire argument,
// named positionally, for a transport parser to fill as it decodes the
// request - the Go analogue of handing out a typed deserializer sink
// per formal parameter.
func (p *ServiceProcedure) BeginCall() []*serial.SI {
	args := make([]*serial.SI, p.NumArgs())
	for i := range args {
		args[i] = serial.NewString("", "")
	}
	return args
}

// EndCall invokes the underlying function with the decoded arguments
// and converts its result to an SI tree. A nil result means the
// procedure returned no value (a void call).
func (p *ServiceProcedure) EndCall(ctx context.Context, args []*serial.SI) (*serial.SI, error) {
	want := p.NumArgs()
	if len(args) != want {
		return nil, rerr.Newf(rerr.KindLogic, "rpc: procedure %q wants %d argument(s), got %d", p.name, want, len(args))
	}

	in := make([]reflect.Value, 0, p.fnType.NumIn())
	offset := 0
	if p.wantsCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
		offset = 1
	}
	for i, a := range args {
		argT := p.fnType.In(i + offset)
		ptr := reflect.New(argT)
		if err := serial.Assign(a, ptr.Interface()); err != nil {
			return nil, rerr.Wrap(rerr.KindSerialization, fmt.Sprintf("rpc: argument %d of %q", i, p.name), err)
		}
		in = append(in, ptr.Elem())
	}

	out := p.fn.Call(in)

	if p.hasErr {
		errIdx := len(out) - 1
		if !out[errIdx].IsNil() {
			return nil, out[errIdx].Interface().(error)
		}
	}
	if !p.hasVal {
		return nil, nil
	}
	result, err := serial.ToSI(out[0].Interface())
	if err != nil {
		return nil, rerr.Wrap(rerr.KindSerialization, fmt.Sprintf("rpc: result of %q", p.name), err)
	}
	return result, nil
}
