package scanner

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Offset is a single constant captured from a header, e.g. "dwLocalPlayer" = "0x1A2B".
type Offset struct {
	Name  string `json:"name"`
	Value string `json:"value"` // literal hex text, never parsed
}

// Namespace holds the offsets declared inside one C++ namespace, in first-seen order.
type Namespace struct {
	Name    string
	Offsets []Offset

	index map[string]int
}

// OffsetTable maps namespace -> variable -> hex literal while remembering
// the order in which both levels were first seen.
type OffsetTable struct {
	Namespaces []*Namespace

	index map[string]int
}

func NewOffsetTable() *OffsetTable {
	return &OffsetTable{index: make(map[string]int)}
}

// Namespace returns the namespace with the given name, appending an empty one if absent.
func (t *OffsetTable) Namespace(name string) *Namespace {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return t.Namespaces[i]
	}
	ns := &Namespace{Name: name, index: make(map[string]int)}
	t.index[name] = len(t.Namespaces)
	t.Namespaces = append(t.Namespaces, ns)
	return ns
}

func (t *OffsetTable) Lookup(name string) (*Namespace, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.Namespaces[i], true
}

// Merge folds other into t. Existing variables keep their position but take
// the value from other.
func (t *OffsetTable) Merge(other *OffsetTable) {
	if other == nil {
		return
	}
	for _, src := range other.Namespaces {
		dst := t.Namespace(src.Name)
		for _, o := range src.Offsets {
			dst.Set(o.Name, o.Value)
		}
	}
}

// Prune drops namespaces that ended up without any offsets.
func (t *OffsetTable) Prune() {
	kept := t.Namespaces[:0]
	for _, ns := range t.Namespaces {
		if len(ns.Offsets) > 0 {
			kept = append(kept, ns)
		}
	}
	for i := len(kept); i < len(t.Namespaces); i++ {
		t.Namespaces[i] = nil
	}
	t.Namespaces = kept
	t.reindex()
}

// Len returns the number of namespaces.
func (t *OffsetTable) Len() int {
	return len(t.Namespaces)
}

// Count returns the number of offsets across all namespaces.
func (t *OffsetTable) Count() int {
	n := 0
	for _, ns := range t.Namespaces {
		n += len(ns.Offsets)
	}
	return n
}

// Map returns an unordered copy of the table.
func (t *OffsetTable) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.Namespaces))
	for _, ns := range t.Namespaces {
		vars := make(map[string]string, len(ns.Offsets))
		for _, o := range ns.Offsets {
			vars[o.Name] = o.Value
		}
		out[ns.Name] = vars
	}
	return out
}

func (t *OffsetTable) reindex() {
	t.index = make(map[string]int, len(t.Namespaces))
	for i, ns := range t.Namespaces {
		t.index[ns.Name] = i
	}
}

// Set adds or overwrites an offset. Overwrites keep the original position.
func (n *Namespace) Set(name, value string) {
	if n.index == nil {
		n.reindex()
	}
	if i, ok := n.index[name]; ok {
		n.Offsets[i].Value = value
		return
	}
	n.index[name] = len(n.Offsets)
	n.Offsets = append(n.Offsets, Offset{Name: name, Value: value})
}

func (n *Namespace) Get(name string) (string, bool) {
	if n.index == nil {
		n.reindex()
	}
	i, ok := n.index[name]
	if !ok {
		return "", false
	}
	return n.Offsets[i].Value, true
}

func (n *Namespace) reindex() {
	n.index = make(map[string]int, len(n.Offsets))
	for i, o := range n.Offsets {
		n.index[o.Name] = i
	}
}

// MarshalJSON writes {"ns": {"var": "0x..", ...}, ...} in first-seen order.
func (t *OffsetTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ns := range t.Namespaces {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, ns.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, o := range ns.Offsets {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, o.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, o.Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSONString writes s as a JSON string. <, > and & stay literal so the
// snapshot carries names exactly as they appear in the headers.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends '\n'
	return nil
}

// UnmarshalJSON reads a snapshot back, keeping key order.
func (t *OffsetTable) UnmarshalJSON(data []byte) error {
	*t = OffsetTable{index: make(map[string]int)}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		nsName, err := readKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("namespace %q: %w", nsName, err)
		}
		ns := t.Namespace(nsName)
		for dec.More() {
			varName, err := readKey(dec)
			if err != nil {
				return err
			}
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			value, ok := tok.(string)
			if !ok {
				return fmt.Errorf("namespace %q: value of %q must be a string, got %T", nsName, varName, tok)
			}
			ns.Set(varName, value)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// MarshalYAML emits an ordered mapping. Values are double-quoted so YAML
// readers don't turn hex literals into integers.
func (t *OffsetTable) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, ns := range t.Namespaces {
		vars := &yaml.Node{Kind: yaml.MappingNode}
		for _, o := range ns.Offsets {
			vars.Content = append(vars.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Value, Style: yaml.DoubleQuotedStyle},
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ns.Name},
			vars,
		)
	}
	return root, nil
}
