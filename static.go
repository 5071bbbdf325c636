package gamecatalog

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// PublicFS serves the bundled single page client.
var PublicFS = mustSub(staticFS, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
