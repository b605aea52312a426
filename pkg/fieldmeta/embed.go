package fieldmeta

import (
	"embed"
	"io/fs"
)

//go:embed fields/*
var embeddedFields embed.FS

// EmbeddedFS returns the bundled field documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedFields, "fields")
	if err != nil {
		// the embed directive guarantees the subpath exists
		panic(err)
	}
	return sub
}
