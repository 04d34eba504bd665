// Package model defines the document object model produced by
// extraction and consumed by cleaner modules and output serializers:
// Document, Page, the Element variants (Word, Image, TableOfContents),
// Font, and the bounding-box geometry kernel.
//
// Coordinates are page-local with the origin at the top-left corner and
// Y increasing downward. Extraction backends are responsible for
// flipping tool output reported in bottom-left PDF space.
package model
