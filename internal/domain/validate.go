package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var allowedProbeMethods = map[string]bool{
	"GET":  true,
	"HEAD": true,
	"POST": true,
}

// ValidateRecord checks a registration payload and returns every
// problem found. An empty slice means the payload is well-formed.
//
// This is the local sanity pass only. Shape validation against the
// schema authority happens separately and is authoritative.
func ValidateRecord(rec *ServiceRecord) []string {
	var errs []string

	if rec.ChittyID == "" {
		errs = append(errs, "chittyId is required")
	}

	if rec.ServiceName == "" {
		errs = append(errs, "serviceName is required")
	} else if !validServiceName(rec.ServiceName) {
		errs = append(errs, fmt.Sprintf("serviceName %q must be lowercase letters, digits or hyphens", rec.ServiceName))
	}

	if rec.DisplayName == "" {
		errs = append(errs, "displayName is required")
	}

	if rec.Version == "" {
		errs = append(errs, "version is required")
	} else if _, err := semver.NewVersion(rec.Version); err != nil {
		errs = append(errs, fmt.Sprintf("version %q is not a valid semantic version", rec.Version))
	}

	if rec.BaseURL == "" {
		errs = append(errs, "baseUrl is required")
	} else if !validBaseURL(rec.BaseURL) {
		errs = append(errs, fmt.Sprintf("baseUrl %q must be an absolute http(s) URL", rec.BaseURL))
	}

	if rec.Category == "" {
		errs = append(errs, "category is required")
	} else if !ValidCategory(rec.Category) {
		errs = append(errs, fmt.Sprintf("unknown category %q", rec.Category))
	}

	if !ValidCertificationLevel(rec.CertificationLevel) {
		errs = append(errs, fmt.Sprintf("unknown certificationLevel %q", rec.CertificationLevel))
	}

	for i, ep := range rec.Endpoints {
		if !strings.HasPrefix(ep.Path, "/") {
			errs = append(errs, fmt.Sprintf("endpoints[%d].path %q must start with /", i, ep.Path))
		}
		if ep.Method == "" {
			errs = append(errs, fmt.Sprintf("endpoints[%d].method is required", i))
		}
	}

	if rec.HealthCheck.Path != "" && !strings.HasPrefix(rec.HealthCheck.Path, "/") {
		errs = append(errs, fmt.Sprintf("healthCheck.path %q must start with /", rec.HealthCheck.Path))
	}
	if m := rec.HealthCheck.Method; m != "" && !allowedProbeMethods[strings.ToUpper(m)] {
		errs = append(errs, fmt.Sprintf("healthCheck.method %q must be GET, HEAD or POST", m))
	}

	return errs
}

func validServiceName(name string) bool {
	if len(name) > 128 {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
