package openapi

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oaskit/deref/errors"
	"github.com/oaskit/deref/json"
	"github.com/oaskit/deref/references"
)

const (
	// ErrParsing is returned when the input is not valid JSON/YAML, or a
	// located node does not decode into the type a dereferenced slot
	// expects. The message carries the offending pointer and cause.
	ErrParsing = errors.Error("error parsing openapi document")
	// ErrUnsupportedVersion is returned when the document is not an OpenAPI
	// 3.1 document. 3.0.x and earlier are rejected.
	ErrUnsupportedVersion = errors.Error("unsupported openapi version")
	// ErrDerefBeforeGettingServers is returned when server aggregation is
	// requested before dereferencing completed.
	ErrDerefBeforeGettingServers = errors.Error("must dereference before getting servers")
	// ErrCircularReference is returned when resolution revisits a pointer
	// already being resolved on the current recursion branch, either during
	// schema composition or through a path item's callbacks.
	ErrCircularReference = errors.Error("circular reference")
)

// Dereferencer owns the raw untyped document, its typed decoding, and the
// resolution cache for one dereference pass. The raw document is the source
// of truth for all pointer lookups and is never mutated; the typed document
// is rebuilt in place by Dereference.
type Dereferencer struct {
	root  *yaml.Node
	doc   *OpenAPI
	cache map[string]*yaml.Node

	dereferenced bool
}

// NewDereferencer parses the provided bytes into a dereferencer. The bytes
// must hold a JSON (or YAML) OpenAPI 3.1 document.
func NewDereferencer(data []byte) (*Dereferencer, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, ErrParsing.Wrapf("unmarshaling document: %w", err)
	}

	return NewDereferencerFromNode(&root)
}

// NewDereferencerFromString parses the provided string into a dereferencer.
func NewDereferencerFromString(s string) (*Dereferencer, error) {
	return NewDereferencer([]byte(s))
}

// NewDereferencerFromNode builds a dereferencer from an already-parsed node
// tree. The node is retained as the raw document for pointer lookups, so it
// must not be mutated afterwards.
func NewDereferencerFromNode(root *yaml.Node) (*Dereferencer, error) {
	var doc OpenAPI
	if err := root.Decode(&doc); err != nil {
		return nil, ErrParsing.Wrapf("decoding document: %w", err)
	}

	major, minor, ok := strings.Cut(doc.OpenAPI, ".")
	if !ok || major != "3" {
		return nil, ErrUnsupportedVersion
	}
	minor, _, _ = strings.Cut(minor, ".")
	if minor != "1" {
		return nil, ErrUnsupportedVersion
	}

	return &Dereferencer{
		root:  root,
		doc:   &doc,
		cache: map[string]*yaml.Node{},
	}, nil
}

// Document returns the typed document. Before Dereference it may contain
// unresolved reference slots.
func (d *Dereferencer) Document() *OpenAPI {
	return d.doc
}

// IsDereferenced returns true once Dereference has completed successfully.
func (d *Dereferencer) IsDereferenced() bool {
	return d.dereferenced
}

// Dereference resolves every internal reference in the document, components
// first, then paths and webhooks. The first failure aborts the walk and no
// partial document state is flagged as dereferenced; the operation is
// all-or-nothing. Calling it again after success is a no-op.
func (d *Dereferencer) Dereference() error {
	if d.dereferenced {
		return nil
	}

	if err := d.dereferenceComponents(d.doc.Components); err != nil {
		return err
	}

	if err := d.dereferencePaths(d.doc.Paths); err != nil {
		return err
	}

	for slot := range d.doc.Webhooks.Values() {
		if err := d.dereferencePathItemSlot(slot, map[references.Reference]struct{}{}); err != nil {
			return err
		}
	}

	d.dereferenced = true
	return nil
}

// GetServers aggregates servers from all levels of the document: top-level
// servers, then for every path item (inline or resolved) that item's
// servers followed by its GET operation's servers, in document order.
// Dereference must have completed first.
func (d *Dereferencer) GetServers() ([]*Server, error) {
	if !d.dereferenced {
		return nil, ErrDerefBeforeGettingServers
	}

	servers := make([]*Server, 0, len(d.doc.Servers))
	servers = append(servers, d.doc.Servers...)

	if d.doc.Paths == nil {
		return servers, nil
	}

	for slot := range d.doc.Paths.Items.Values() {
		item := slot.GetObject()
		if item == nil {
			// Unreachable after a successful dereference pass.
			return nil, ErrDerefBeforeGettingServers
		}

		servers = append(servers, item.Servers...)
		if item.Get != nil {
			servers = append(servers, item.Get.Servers...)
		}
	}

	return servers, nil
}

// WriteYAML writes the typed document as YAML. Resolved slots encode the
// concrete object they carry, so after Dereference the output contains no
// internal references.
func (d *Dereferencer) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON writes the typed document as JSON with the given indentation,
// preserving key order.
func (d *Dereferencer) WriteJSON(indentation int, w io.Writer) error {
	var node yaml.Node
	if err := node.Encode(d.doc); err != nil {
		return err
	}
	return json.FromYAML(&node, indentation, w)
}
