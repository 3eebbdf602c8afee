package docs

import _ "embed"

// Usage is the usage guide bundled with the project binary.
//
//go:embed usage.md
var Usage string
