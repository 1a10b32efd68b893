package expr

import (
	"encoding/json"
	"fmt"
)

// PathKind distinguishes the two forms an Embed payload's location can
// take. The core never inspects a Path beyond structural equality; this
// tag exists purely so front ends and the CLI can render it.
type PathKind int

const (
	PathFile PathKind = iota
	PathURL
)

// Path is the payload type carried by Embed in a front end that resolves
// external references before handing the tree to the core. The core
// itself treats Path values as opaque atoms (spec §3).
type Path struct {
	Kind PathKind
	// Value is the filesystem path or URL text, depending on Kind.
	Value string
}

func NewFilePath(p string) Path { return Path{Kind: PathFile, Value: p} }
func NewURLPath(u string) Path  { return Path{Kind: PathURL, Value: u} }

func (p Path) String() string {
	switch p.Kind {
	case PathFile:
		return p.Value
	case PathURL:
		return p.Value
	default:
		panic(fmt.Sprintf("expr: invalid PathKind %d", int(p.Kind)))
	}
}

// MarshalJSON renders a Path as {"kind":"file"|"url","value":"..."}, the
// same shape exprjson writes for an embed's path (exprjson builds that
// object itself rather than calling this method).
func (p Path) MarshalJSON() ([]byte, error) {
	kind := "file"
	if p.Kind == PathURL {
		kind = "url"
	}
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}{kind, p.Value})
}
