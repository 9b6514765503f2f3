package version

import (
	"runtime"
	"time"
)

// Build metadata, overridden at link time with -ldflags -X.
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-08-23T10:00:00Z
	GoVersion = runtime.Version()
)
