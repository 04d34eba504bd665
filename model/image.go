package model

import (
	"fmt"
	"html"
)

// Image is a leaf element referencing a raster file extracted to a
// side-channel path by the extraction tool.
type Image struct {
	Box        BBox
	SourcePath string
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) BoundingBox() BBox { return i.Box }

func (i *Image) GetText() string { return "" }

func (i *Image) ToHTML() string {
	return fmt.Sprintf(`<img src="%s"/>`, html.EscapeString(i.SourcePath))
}

func (i *Image) ToMarkdown() string {
	return fmt.Sprintf("![](%s)", i.SourcePath)
}
