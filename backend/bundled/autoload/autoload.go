// Package autoload registers every bundled backend with
// jsonio.DefaultRegistry. Import it for side effects:
//
//	import _ "github.com/reoring/jsonio/backend/bundled/autoload"
package autoload

import (
	"github.com/reoring/jsonio"
	"github.com/reoring/jsonio/backend/bundled"
)

// init lives outside the root package to avoid an import cycle.
func init() {
	if err := bundled.RegisterAll(jsonio.DefaultRegistry); err != nil {
		panic(err)
	}
}
