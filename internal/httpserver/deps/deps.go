package deps

import (
	"time"

	"github.com/chittyos/chittyregistry/internal/audit"
	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/monitor"
	"github.com/chittyos/chittyregistry/internal/registry"
	"github.com/chittyos/chittyregistry/internal/store"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed on mutating endpoints
	AllowedCIDRS []string // IPs allowed on operational/admin endpoints
	TrustProxy   bool     // true when running behind a trusted reverse proxy

	Catalog     *registry.Catalog // registry operations
	Monitor     *monitor.Monitor  // on-demand health checks
	Gate        *trustgate.Gate   // per-operation authorization
	Authorities *authority.Client // upstream platform authorities
	Audit       audit.Recorder    // best-effort operation audit
	Store       store.Store       // readiness probe target

	SeedFile         string        // canonical seed override file ("" = built-ins)
	ReconcileTrigger chan struct{} // manual index reconcile trigger
}
