// Package pipeline contains the text-level stages of the conversion
// pipeline: markdown normalization, mermaid fence extraction and
// substitution, markdown-to-HTML conversion, and HTML page assembly.
//
// Stages are pure functions of their input where possible; none of them
// perform I/O. Rendering a diagram to an image is the caller's concern, the
// pipeline only locates fences and splices results back in.
package pipeline
