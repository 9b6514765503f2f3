package trustgate

// Gated operation names.
const (
	OpDiscover   = "registry.discover"
	OpGet        = "registry.get"
	OpSearch     = "registry.search"
	OpStats      = "registry.stats"
	OpRegister   = "registry.register"
	OpDeregister = "registry.deregister"
	OpCheck      = "registry.check"
	OpBootstrap  = "registry.bootstrap"
)

// Rule is the static requirement set of one gated operation.
type Rule struct {
	MinTrustScore       float64
	RequiredPermissions []string
	RequiredProjects    []string
}

// The table is fixed at build time; operations not listed here are
// denied outright.
var rules = map[string]Rule{
	OpDiscover: {},
	OpGet:      {},
	OpSearch:   {},
	OpStats:    {},
	OpRegister: {
		MinTrustScore:       60,
		RequiredPermissions: []string{"service:register"},
	},
	OpDeregister: {
		MinTrustScore:       80,
		RequiredPermissions: []string{"service:register", "service:deregister"},
	},
	OpCheck: {
		MinTrustScore:       60,
		RequiredPermissions: []string{"service:register"},
	},
	OpBootstrap: {
		MinTrustScore:       95,
		RequiredPermissions: []string{"registry:admin"},
		RequiredProjects:    []string{"chittyos-core"},
	},
}

// RuleFor returns the rule for op, false when op is unknown.
func RuleFor(op string) (Rule, bool) {
	rule, ok := rules[op]
	return rule, ok
}
