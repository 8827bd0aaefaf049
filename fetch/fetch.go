// Package fetch downloads node-type schema arrays from grammar
// repositories.
package fetch

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/internal/httpclient"
	"github.com/grammarkit/nodetypes/registry"
)

// NodeType is one node-type schema record. The record's shape is defined
// by tree-sitter, not by this tool: only the type name is interpreted,
// the full object is carried through unchanged.
type NodeType struct {
	Type string
	Raw  json.RawMessage
}

// UnmarshalJSON extracts the type name and keeps the original object.
func (n *NodeType) UnmarshalJSON(data []byte) error {
	var header struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return errors.Wrap(err, "schema entry is not an object")
	}
	if header.Type == nil || *header.Type == "" {
		return errors.New("schema entry has no type field")
	}
	n.Type = *header.Type
	n.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Fetcher downloads and decodes node-type schemas.
type Fetcher struct {
	client *httpclient.Client
}

// New creates a Fetcher with the given request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{client: httpclient.New(timeout)}
}

// NewWithClient creates a Fetcher around an existing client.
func NewWithClient(client *httpclient.Client) *Fetcher {
	return &Fetcher{client: client}
}

// BuildURL substitutes the resolved tag into a registry URL template.
// The template contract is a single placeholder occurrence; a template
// without one is a registry bug, not a fetchable URL.
func BuildURL(template, tag string) (string, error) {
	if !strings.Contains(template, registry.TagPlaceholder) {
		return "", errors.Newf("template %q has no %s placeholder", template, registry.TagPlaceholder)
	}
	return strings.Replace(template, registry.TagPlaceholder, tag, 1), nil
}

// Fetch performs one GET against url and decodes the body as a JSON
// array of node-type schemas. All failures surface as fetch errors
// naming the language; nothing is retried.
func (f *Fetcher) Fetch(lang, url string) ([]NodeType, error) {
	if _, err := f.client.ValidateURL(url); err != nil {
		return nil, errors.WrapFetch(err, lang)
	}

	resp, err := f.client.Get(url)
	if err != nil {
		return nil, errors.WrapFetch(err, lang)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapFetch(errors.Newf("GET %s: unexpected status %s", url, resp.Status), lang)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapFetch(errors.Wrapf(err, "GET %s: reading body", url), lang)
	}

	var nodeTypes []NodeType
	if err := json.Unmarshal(body, &nodeTypes); err != nil {
		return nil, errors.WrapFetch(errors.Wrapf(err, "GET %s: decoding schema array", url), lang)
	}

	return nodeTypes, nil
}
