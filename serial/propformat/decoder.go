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

package propformat

import (
	"sort"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// pnode is a generic tree assembled from dotted-path entries before being
// replayed as Formatter events - the same buffer-then-push shape used by
// xformat and binfmt's decoders, needed here because a path's array-vs-
// object nature can only be known once every sibling key has arrived.
type pnode struct {
	keys     []string
	children map[string]*pnode
	isLeaf   bool
	isRef    bool
	value    string
}

func newPnode() *pnode {
	return &pnode{children: make(map[string]*pnode)}
}

func (n *pnode) child(key string) *pnode {
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newPnode()
	n.children[key] = c
	n.keys = append(n.keys, key)
	return c
}

func (n *pnode) isArray() bool {
	if len(n.keys) == 0 {
		return false
	}
	for i, k := range sortedKeys(n.keys) {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func sortedKeys(keys []string) []string {
	out := append([]string{}, keys...)
	sort.Slice(out, func(i, j int) bool {
		ni, erri := strconv.Atoi(out[i])
		nj, errj := strconv.Atoi(out[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return out[i] < out[j]
	})
	return out
}

// Decode parses propformat text out of data and pushes the reconstructed
// SI events into f.
func Decode(data []byte, f serial.Formatter) error {
	root := newPnode()
	lines := strings.Split(string(data), "\n")
	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		path, value, err := splitEntry(line)
		if err != nil {
			return rerr.Wrap(rerr.KindSerialization, "propformat: line "+strconv.Itoa(lineNo+1), err)
		}
		n := root
		if path != "" {
			for _, seg := range strings.Split(path, ".") {
				n = n.child(seg)
			}
		}
		if ref, ok := parseRef(value); ok {
			n.isRef = true
			n.value = ref
			continue
		}
		s, err := unquote(value)
		if err != nil {
			return rerr.Wrap(rerr.KindSerialization, "propformat: line "+strconv.Itoa(lineNo+1), err)
		}
		n.isLeaf = true
		n.value = s
	}
	if err := pushNode("", root, f); err != nil {
		return err
	}
	return f.Finish()
}

// Unmarshal decodes data and assigns the result into out.
func Unmarshal(data []byte, out any) error {
	d := serial.NewDeserializer()
	if err := Decode(data, d); err != nil {
		return err
	}
	si, err := d.Result()
	if err != nil {
		return err
	}
	return serial.Assign(si, out)
}

func splitEntry(line string) (path, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", strings.TrimSpace(line), nil
	}
	// A bare-root leaf (no key) is a quoted value with no '=' before it;
	// only treat '=' as a separator when what precedes it looks like a
	// dotted key, i.e. contains no quote characters.
	key := strings.TrimSpace(line[:idx])
	if strings.ContainsAny(key, `"`) {
		return "", strings.TrimSpace(line), nil
	}
	return key, strings.TrimSpace(line[idx+1:]), nil
}

func parseRef(value string) (string, bool) {
	if strings.HasPrefix(value, "$ref(") && strings.HasSuffix(value, ")") {
		return value[len("$ref(") : len(value)-1], true
	}
	return "", false
}

func unquote(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", rerr.New(rerr.KindSerialization, "propformat: value is not quoted")
	}
	inner := value[1 : len(value)-1]
	var b strings.Builder
	escaped := false
	for _, r := range inner {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func pushNode(name string, n *pnode, f serial.Formatter) error {
	switch {
	case n.isRef:
		return f.AddReference(name, n.value)
	case n.isLeaf:
		return f.AddValue(name, "", serial.NewString(name, n.value), "")
	case n.isArray():
		if err := f.BeginArray(name, "", ""); err != nil {
			return err
		}
		for _, k := range sortedKeys(n.keys) {
			if err := pushNode("", n.children[k], f); err != nil {
				return err
			}
		}
		return f.FinishArray()
	default:
		if err := f.BeginObject(name, "", ""); err != nil {
			return err
		}
		for _, k := range n.keys {
			if err := f.BeginMember(k); err != nil {
				return err
			}
			if err := pushNode(k, n.children[k], f); err != nil {
				return err
			}
			if err := f.FinishMember(); err != nil {
				return err
			}
		}
		return f.FinishObject()
	}
}
