package syntax

import (
	"encoding/json"
	"fmt"
)

// jsonNode mirrors Node's shape for a hand-authored or tool-generated tree:
// the external parser this core depends on (spec.md §1) is free to emit
// this format directly instead of constructing *Node graphs itself.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Op       string      `json:"op,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

var kindByName map[string]Kind

func init() {
	kindByName = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		kindByName[name] = k
	}
}

// DecodeJSON parses the {kind,text,op,children} tree format produced by
// test fixtures and the cmd demo driver into a *Node graph. Every node's
// Range is left zero (IsValid() false), since this format carries no
// offsets into any real source buffer.
func DecodeJSON(data []byte) (*Node, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("syntax: decoding json tree: %w", err)
	}
	return convertJSON(&root)
}

func convertJSON(jn *jsonNode) (*Node, error) {
	if jn == nil {
		return nil, nil
	}
	kind, ok := kindByName[jn.Kind]
	if !ok {
		return nil, fmt.Errorf("syntax: unknown node kind %q", jn.Kind)
	}

	n := &Node{Kind: kind, Text: jn.Text, Op: jn.Op}
	for _, child := range jn.Children {
		c, err := convertJSON(child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
