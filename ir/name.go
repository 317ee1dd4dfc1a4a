// Package ir implements the immutable term and case-tree model that the analyzer consumes
// read-only: names, terms, case trees, and top-level definitions. Nothing in this package is
// mutated once constructed; the builder (package graph) only ever reads through it.
package ir

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Name is the opaque, totally ordered, hashable identity of a top-level symbol. It has two
// disjoint sub-kinds: user names (possibly namespaced) and machine-generated names (a numeric
// tag plus a string, as produced by earlier compiler passes for lifted case blocks, instance
// dictionaries, and the like).
type Name struct {
	// namespace holds the dot-separated namespace components for a UserName; empty for a
	// MachineName.
	namespace string
	// text is the bare identifier for a UserName, or the string half of a MachineName.
	text string
	// machine is true if this Name was synthesized by an earlier pass rather than written by
	// the programmer.
	machine bool
	// tag disambiguates MachineNames that share the same text.
	tag int
}

// UserName builds a Name for a programmer-written, possibly namespaced, identifier. namespace
// may be empty for an unqualified name.
func UserName(namespace, text string) Name {
	return Name{namespace: namespace, text: text}
}

// MachineName builds a Name for a compiler-synthesized identifier, such as a lifted case-block
// function or an eta-expansion variable.
func MachineName(tag int, text string) Name {
	return Name{machine: true, tag: tag, text: text}
}

// IsMachineGenerated reports whether n was synthesized by an earlier compiler pass rather than
// written by the programmer.
func (n Name) IsMachineGenerated() bool { return n.machine }

// machineWhitelist is the small set of machine-generated names that are globally visible and
// therefore legitimate to reference from any definition's body, per spec: __Unit, __True,
// __False.
var machineWhitelist = map[string]bool{
	"__Unit":  true,
	"__True":  true,
	"__False": true,
}

// IsWhitelistedMachineName reports whether n is one of the small set of machine-generated names
// that are globally visible (__Unit, __True, __False). A machine-generated Name appearing as a
// free variable during term analysis that is not on this whitelist indicates a bug in an earlier
// pass (spec §7, "Stray machine-generated variable").
func (n Name) IsWhitelistedMachineName() bool {
	return n.machine && machineWhitelist[n.text]
}

// String renders n for diagnostics and logging.
func (n Name) String() string {
	if n.machine {
		return fmt.Sprintf("{%s:%d}", n.text, n.tag)
	}
	if n.namespace == "" {
		return n.text
	}
	return n.namespace + "." + n.text
}

// Less gives Name a total order, so that Names can be used as sorted-map keys wherever
// deterministic iteration matters (see util/nodeset).
func (n Name) Less(other Name) bool {
	if n.machine != other.machine {
		return !n.machine // user names sort before machine names
	}
	if n.machine {
		if n.tag != other.tag {
			return n.tag < other.tag
		}
		return n.text < other.text
	}
	if n.namespace != other.namespace {
		return n.namespace < other.namespace
	}
	return n.text < other.text
}

// EntryPoint is the conventional entry-point Name, Main.main.
func EntryPoint() Name { return UserName("Main", "main") }

// gobName mirrors Name with exported fields, since gob cannot see unexported struct fields
// directly; package store's cross-run cache (the only place a Name is ever serialized) relies on
// these methods.
type gobName struct {
	Namespace string
	Text      string
	Machine   bool
	Tag       int
}

// GobEncode implements gob.GobEncoder for Name.
func (n Name) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gobName{
		Namespace: n.namespace,
		Text:      n.text,
		Machine:   n.machine,
		Tag:       n.tag,
	})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder for Name.
func (n *Name) GobDecode(data []byte) error {
	var g gobName
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	n.namespace = g.Namespace
	n.text = g.Text
	n.machine = g.Machine
	n.tag = g.Tag
	return nil
}
