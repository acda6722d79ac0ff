// SPDX-License-Identifier: MPL-2.0

package confdoc

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

type (
	// ResolveOptions controls substitution resolution.
	ResolveOptions struct {
		// Env looks up an environment variable. Nil defaults to os.LookupEnv.
		Env func(name string) (string, bool)

		// AllowUnsetEnv makes unset `${env.VAR}` references resolve to the
		// empty string instead of failing. The reference is still recorded
		// in ResolveInfo with Set=false so callers can surface it as a
		// diagnostic rather than a hard error.
		AllowUnsetEnv bool
	}

	// EnvRef records a single environment-variable reference encountered
	// during resolution.
	EnvRef struct {
		// Name is the variable name (without the `env.` prefix).
		Name string
		// Pos is where the reference appears in the source.
		Pos Position
		// Optional reports the `${?...}` form.
		Optional bool
		// Set reports whether the variable had a value at resolution time.
		Set bool
	}

	// ResolveInfo is metadata collected while resolving a document.
	ResolveInfo struct {
		// EnvRefs lists every environment-variable reference, in source
		// order, including duplicates of the same name at distinct sites.
		EnvRefs []EnvRef
	}

	// absent is the internal marker for optional substitutions that did not
	// resolve. Absent values vanish: list elements are dropped, object keys
	// are omitted, concatenation parts disappear.
	absent struct{}

	// objNode is a mutable merged-object view built from ordered field
	// assignments.
	objNode struct {
		entries map[string]*slot
		order   []string
	}

	// slot is the current value at one path: either a merged object or a
	// chain of leaf assignments (newest first, for self-reference fallback).
	slot struct {
		obj  *objNode
		leaf *entry
	}

	// entry is one leaf assignment. prev is the assignment it shadowed, and
	// prevObj the object value it shadowed, if any; self-referential
	// substitutions resolve against those.
	entry struct {
		node    Node
		prev    *entry
		prevObj *objNode
	}

	resolver struct {
		root    *objNode
		opts    ResolveOptions
		info    *ResolveInfo
		visited map[*entry]bool
		chain   []string
	}
)

// EnvNames returns the sorted, de-duplicated set of referenced variable names.
func (i *ResolveInfo) EnvNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, ref := range i.EnvRefs {
		if !seen[ref.Name] {
			seen[ref.Name] = true
			names = append(names, ref.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Resolve merges the document's field assignments, expands all substitutions,
// and returns the resulting value tree. The returned map contains only
// map[string]any, []any, string, int64, float64, bool, and nil values.
func (d *Document) Resolve(opts ResolveOptions) (map[string]any, *ResolveInfo, error) {
	if opts.Env == nil {
		opts.Env = os.LookupEnv
	}

	r := &resolver{
		root:    newObjNode(),
		opts:    opts,
		info:    &ResolveInfo{},
		visited: map[*entry]bool{},
	}
	for _, f := range d.Root.Fields {
		r.apply(r.root, f.Path, f.Value)
	}

	out, err := r.resolveObject(r.root)
	if err != nil {
		return nil, nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		// resolveObject on the root always yields a map; absent cannot occur.
		m = map[string]any{}
	}
	return m, r.info, nil
}

func newObjNode() *objNode {
	return &objNode{entries: map[string]*slot{}}
}

func (o *objNode) slotFor(key string) *slot {
	s, ok := o.entries[key]
	if !ok {
		s = &slot{}
		o.entries[key] = s
		o.order = append(o.order, key)
	}
	return s
}

// apply records one assignment into the merged tree. Objects deep-merge with
// existing objects; leaves replace, remembering what they shadowed.
func (r *resolver) apply(o *objNode, path []string, v Node) {
	for _, seg := range path[:len(path)-1] {
		s := o.slotFor(seg)
		if s.obj == nil {
			// A nested assignment turns whatever was here into an object.
			s.obj = newObjNode()
			s.leaf = nil
		}
		o = s.obj
	}

	s := o.slotFor(path[len(path)-1])
	if obj, ok := v.(*Object); ok {
		if s.obj == nil {
			s.obj = newObjNode()
			s.leaf = nil
		}
		for _, f := range obj.Fields {
			r.apply(s.obj, f.Path, f.Value)
		}
		return
	}

	s.leaf = &entry{node: v, prev: s.leaf, prevObj: s.obj}
	s.obj = nil
}

func (r *resolver) resolveObject(o *objNode) (any, error) {
	out := map[string]any{}
	for _, key := range o.order {
		v, err := r.resolveSlot(o.entries[key])
		if err != nil {
			return nil, err
		}
		if _, isAbsent := v.(absent); isAbsent {
			continue
		}
		out[key] = v
	}
	return out, nil
}

func (r *resolver) resolveSlot(s *slot) (any, error) {
	if s.obj != nil {
		return r.resolveObject(s.obj)
	}
	if s.leaf != nil {
		return r.resolveEntry(s.leaf)
	}
	return absent{}, nil
}

// resolveEntry resolves one leaf assignment. Re-entering an entry that is
// already being resolved means the entry refers to itself; resolution falls
// back to the shadowed value, or fails with a cycle if there is none.
func (r *resolver) resolveEntry(e *entry) (any, error) {
	if r.visited[e] {
		if e.prev != nil {
			return r.resolveEntry(e.prev)
		}
		if e.prevObj != nil {
			return r.resolveObject(e.prevObj)
		}
		return nil, &CycleError{Pos: e.node.Pos(), Chain: append([]string{}, r.chain...)}
	}

	r.visited[e] = true
	defer delete(r.visited, e)
	return r.resolveNode(e.node)
}

func (r *resolver) resolveNode(n Node) (any, error) {
	switch v := n.(type) {
	case *Literal:
		return v.Val, nil

	case *List:
		out := []any{}
		for _, elem := range v.Elems {
			rv, err := r.resolveNode(elem)
			if err != nil {
				return nil, err
			}
			if _, isAbsent := rv.(absent); isAbsent {
				continue
			}
			out = append(out, rv)
		}
		return out, nil

	case *Object:
		// Inline object value (e.g. a list element). Merge its own fields
		// locally; substitution paths inside still resolve from the root.
		sub := newObjNode()
		for _, f := range v.Fields {
			r.apply(sub, f.Path, f.Value)
		}
		return r.resolveObject(sub)

	case *Substitution:
		return r.resolveSubstitution(v)

	case *Concat:
		return r.resolveConcat(v)

	default:
		return nil, &ResolveError{Pos: n.Pos(), Msg: fmt.Sprintf("internal error: unknown node type %T", n)}
	}
}

func (r *resolver) resolveSubstitution(s *Substitution) (any, error) {
	if name, ok := strings.CutPrefix(s.Path, "env."); ok {
		return r.resolveEnv(s, name)
	}

	r.chain = append(r.chain, s.Path)
	defer func() { r.chain = r.chain[:len(r.chain)-1] }()

	v, found, err := r.lookup(strings.Split(s.Path, "."))
	if err != nil {
		// An optional self-reference with nothing to fall back on acts as
		// undefined: `xs += x` on a previously unset key starts a fresh list.
		var cycleErr *CycleError
		if s.Optional && errors.As(err, &cycleErr) {
			return absent{}, nil
		}
		return nil, err
	}
	if found {
		return v, nil
	}

	// HOCON-style fallback: an undefined path may still name an environment
	// variable directly, e.g. ${HOME}.
	if val, ok := r.opts.Env(s.Path); ok && !strings.Contains(s.Path, ".") {
		r.info.EnvRefs = append(r.info.EnvRefs, EnvRef{Name: s.Path, Pos: s.pos, Optional: s.Optional, Set: true})
		return val, nil
	}

	if s.Optional {
		return absent{}, nil
	}
	return nil, &ResolveError{
		Pos:   s.pos,
		Path:  s.Path,
		Msg:   "substitution path is not defined",
		Cause: ErrUnresolvedSubstitution,
	}
}

func (r *resolver) resolveEnv(s *Substitution, name string) (any, error) {
	val, set := r.opts.Env(name)
	r.info.EnvRefs = append(r.info.EnvRefs, EnvRef{Name: name, Pos: s.pos, Optional: s.Optional, Set: set})

	if set {
		return val, nil
	}
	if s.Optional {
		return absent{}, nil
	}
	if r.opts.AllowUnsetEnv {
		return "", nil
	}
	return nil, &ResolveError{
		Pos:   s.pos,
		Path:  s.Path,
		Msg:   fmt.Sprintf("environment variable %s is not set", name),
		Cause: ErrUnresolvedSubstitution,
	}
}

// lookup walks the merged tree along path segments. Descending through a leaf
// (e.g. `${b.x}` where b was assigned `${a}`) resolves the leaf first and
// indexes into the result.
func (r *resolver) lookup(segs []string) (any, bool, error) {
	o := r.root
	for i, seg := range segs {
		s, ok := o.entries[seg]
		if !ok {
			return nil, false, nil
		}

		last := i == len(segs)-1
		if last {
			v, err := r.resolveSlot(s)
			if err != nil {
				return nil, false, err
			}
			if _, isAbsent := v.(absent); isAbsent {
				return nil, false, nil
			}
			return v, true, nil
		}

		if s.obj != nil {
			o = s.obj
			continue
		}
		if s.leaf == nil {
			return nil, false, nil
		}

		// Leaf mid-path: resolve it and index the remainder dynamically.
		v, err := r.resolveEntry(s.leaf)
		if err != nil {
			return nil, false, err
		}
		return indexValue(v, segs[i+1:])
	}
	return nil, false, nil
}

func indexValue(v any, segs []string) (any, bool, error) {
	for _, seg := range segs {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false, nil
		}
		v, ok = m[seg]
		if !ok {
			return nil, false, nil
		}
	}
	return v, true, nil
}

// resolveConcat combines adjacent value parts. Lists concatenate, objects
// deep-merge (later parts win), and everything else becomes a string with
// original spacing between parts preserved.
func (r *resolver) resolveConcat(c *Concat) (any, error) {
	type part struct {
		val any
		gap bool
	}

	var (
		parts   []part
		lists   int
		objects int
	)
	for i, n := range c.Parts {
		v, err := r.resolveNode(n)
		if err != nil {
			return nil, err
		}
		if _, isAbsent := v.(absent); isAbsent {
			continue
		}
		switch v.(type) {
		case []any:
			lists++
		case map[string]any:
			objects++
		}
		parts = append(parts, part{val: v, gap: c.Gaps[i]})
	}

	switch {
	case len(parts) == 0:
		return absent{}, nil
	case len(parts) == 1:
		return parts[0].val, nil

	case lists == len(parts):
		var out []any
		for _, p := range parts {
			out = append(out, p.val.([]any)...)
		}
		return out, nil

	case objects == len(parts):
		out := map[string]any{}
		for _, p := range parts {
			mergeMaps(out, p.val.(map[string]any))
		}
		return out, nil

	case lists > 0 || objects > 0:
		return nil, &ResolveError{
			Pos: c.pos,
			Msg: "cannot concatenate values of different kinds (mixing lists or objects with scalars)",
		}

	default:
		var sb strings.Builder
		for i, p := range parts {
			if i > 0 && p.gap {
				sb.WriteString(" ")
			}
			sb.WriteString(stringifyScalar(p.val))
		}
		return sb.String(), nil
	}
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeMaps(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

func stringifyScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
