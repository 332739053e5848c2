// Package assets provides the embedded template presets and the loaders
// that fetch header logos.
//
// # Presets
//
// Presets are partial templates embedded at compile time under presets/.
// A preset names one of the built-in color schemes; Preset expands it into
// the full palette. Fields a preset leaves out inherit the renderer's
// defaults when the template is resolved.
//
// # Logo Loaders
//
// Logos are referenced by a string and loaded through LogoLoader:
//
//	LogoLoader (interface)
//	    │
//	    ├── FilesystemLoader  - files under a base directory
//	    ├── HTTPLoader        - http:// and https:// URLs
//	    ├── DataURLLoader     - data:image/...;base64 URLs
//	    └── Resolver          - dispatches on the reference scheme
//
// # Security
//
// FilesystemLoader resolves symlinks and verifies paths stay within its
// base directory. HTTPLoader caps the response size and the request time.
package assets
