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

package iniformat

import (
	"sort"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// inode mirrors propformat's pnode: a generic tree assembled while
// reading lines, replayed as Formatter events once the file has been
// fully scanned (a section's shape - flat object vs. flattened array -
// can only be judged once all of its keys are known).
type inode struct {
	keys     []string
	children map[string]*inode
	isLeaf   bool
	isRef    bool
	value    string
}

func newInode() *inode {
	return &inode{children: make(map[string]*inode)}
}

func (n *inode) child(key string) *inode {
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newInode()
	n.children[key] = c
	n.keys = append(n.keys, key)
	return c
}

func (n *inode) isArray() bool {
	if len(n.keys) == 0 {
		return false
	}
	ordered := append([]string{}, n.keys...)
	sort.Slice(ordered, func(i, j int) bool {
		ni, erri := strconv.Atoi(ordered[i])
		nj, errj := strconv.Atoi(ordered[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return ordered[i] < ordered[j]
	})
	for i, k := range ordered {
		if k != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// Decode parses an ini document out of data and pushes the reconstructed
// SI events into f. The root is always an Object; section members whose
// keys are a contiguous "0","1",... run decode as an Array.
func Decode(data []byte, f serial.Formatter) error {
	root := newInode()
	var section *inode = root

	for lineNo, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			section = root.child(name)
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return rerr.Newf(rerr.KindSerialization, "iniformat: line %d: missing '='", lineNo+1)
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		n := section
		for _, seg := range strings.Split(key, ".") {
			n = n.child(seg)
		}
		if ref, ok := parseRef(value); ok {
			n.isRef = true
			n.value = ref
			continue
		}
		s, err := unquote(value)
		if err != nil {
			return rerr.Wrap(rerr.KindSerialization, "iniformat: line "+strconv.Itoa(lineNo+1), err)
		}
		n.isLeaf = true
		n.value = s
	}

	if err := pushInode("", root, f); err != nil {
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

func parseRef(value string) (string, bool) {
	if strings.HasPrefix(value, "$ref(") && strings.HasSuffix(value, ")") {
		return value[len("$ref(") : len(value)-1], true
	}
	return "", false
}

func unquote(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", rerr.New(rerr.KindSerialization, "iniformat: value is not quoted")
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

func pushInode(name string, n *inode, f serial.Formatter) error {
	switch {
	case n.isRef:
		return f.AddReference(name, n.value)
	case n.isLeaf:
		return f.AddValue(name, "", serial.NewString(name, n.value), "")
	case n.isArray():
		if err := f.BeginArray(name, "", ""); err != nil {
			return err
		}
		for i := 0; i < len(n.keys); i++ {
			if err := pushInode("", n.children[strconv.Itoa(i)], f); err != nil {
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
			if err := pushInode(k, n.children[k], f); err != nil {
				return err
			}
			if err := f.FinishMember(); err != nil {
				return err
			}
		}
		return f.FinishObject()
	}
}
