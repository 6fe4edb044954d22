package serve

import _ "embed"

// The dashboard is a single self-contained page; all live data arrives
// through /codes.json from the page's own refresh loop.
//
//go:embed dashboard.html
var indexHTML []byte
