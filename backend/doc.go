// Package backend defines the extraction backend abstraction and its
// two variants: PDFText, which drives an external text-extraction tool
// over a PDF and reconstructs words from its XML output, and OCR, which
// recognizes a single raster image through Tesseract.
//
// Backends convert one input file into a model.Document. The digital
// backend may recursively trigger nested extraction runs for images
// embedded in the input; the nested runner is injected by the pipeline
// so that a backend never constructs its own orchestration.
package backend
