// Package dts renders fetched node-type schemas into generated
// TypeScript declaration files.
package dts

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/grammarkit/nodetypes/errors"
	"github.com/grammarkit/nodetypes/fetch"
)

// banner is the first line of every generated file.
const banner = "// Auto-generated by nodetypes - DO NOT EDIT. Regenerated on every run."

// Emitter writes declaration files into an output directory.
type Emitter struct {
	fs     afero.Fs
	outDir string
}

// New creates an Emitter writing to outDir on the host filesystem.
func New(outDir string) *Emitter {
	return NewWithFs(afero.NewOsFs(), outDir)
}

// NewWithFs creates an Emitter against an arbitrary filesystem.
func NewWithFs(fs afero.Fs, outDir string) *Emitter {
	return &Emitter{fs: fs, outDir: outDir}
}

// BuildMap keys each schema record by its type name. Schemas are assumed
// to have unique type names; on a repeated name the later record wins.
func BuildMap(nodeTypes []fetch.NodeType) map[string]json.RawMessage {
	mapping := make(map[string]json.RawMessage, len(nodeTypes))
	for _, nt := range nodeTypes {
		mapping[nt.Type] = nt.Raw
	}
	return mapping
}

// Render produces the declaration file content: banner, a type alias
// holding the pretty-printed mapping, and a default export. Map keys
// serialize in sorted order, so output is deterministic for a given
// schema.
func Render(mapping map[string]json.RawMessage) ([]byte, error) {
	serialized, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "serializing node type map")
	}

	var sb strings.Builder
	sb.WriteString(banner)
	sb.WriteString("\n")
	sb.WriteString("type NodeTypeMap = ")
	sb.Write(serialized)
	sb.WriteString(";\n")
	sb.WriteString("export default NodeTypeMap;\n")
	return []byte(sb.String()), nil
}

// FileName returns the declaration file name for a language.
func FileName(lang string) string {
	return lang + ".d.ts"
}

// Emit writes the declaration file for a language, overwriting any
// previous one, and returns the written path.
func (e *Emitter) Emit(lang string, nodeTypes []fetch.NodeType) (string, error) {
	content, err := Render(BuildMap(nodeTypes))
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.outDir, FileName(lang))
	if err := e.fs.MkdirAll(e.outDir, 0755); err != nil {
		return "", errors.WrapWrite(err, e.outDir)
	}
	if err := afero.WriteFile(e.fs, path, content, 0644); err != nil {
		return "", errors.WrapWrite(err, path)
	}
	return path, nil
}
