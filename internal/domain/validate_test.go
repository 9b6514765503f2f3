package domain

import (
	"strings"
	"testing"
)

func validRecord() *ServiceRecord {
	return &ServiceRecord{
		ChittyID:    "CHITTY-SVC-001",
		ServiceName: "chittytrust",
		DisplayName: "ChittyTrust",
		Version:     "1.2.0",
		BaseURL:     "https://trust.chitty.cc",
		Category:    CategorySecurityVerification,
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	if errs := ValidateRecord(validRecord()); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceRecord)
		wantErr string
	}{
		{
			name:    "missing chittyId",
			mutate:  func(r *ServiceRecord) { r.ChittyID = "" },
			wantErr: "chittyId is required",
		},
		{
			name:    "missing serviceName",
			mutate:  func(r *ServiceRecord) { r.ServiceName = "" },
			wantErr: "serviceName is required",
		},
		{
			name:    "uppercase serviceName",
			mutate:  func(r *ServiceRecord) { r.ServiceName = "ChittyTrust" },
			wantErr: "lowercase",
		},
		{
			name:    "leading hyphen serviceName",
			mutate:  func(r *ServiceRecord) { r.ServiceName = "-trust" },
			wantErr: "lowercase",
		},
		{
			name:    "bad version",
			mutate:  func(r *ServiceRecord) { r.Version = "not-a-version" },
			wantErr: "semantic version",
		},
		{
			name:    "relative baseUrl",
			mutate:  func(r *ServiceRecord) { r.BaseURL = "/api" },
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "ftp baseUrl",
			mutate:  func(r *ServiceRecord) { r.BaseURL = "ftp://files.chitty.cc" },
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "unknown category",
			mutate:  func(r *ServiceRecord) { r.Category = "misc" },
			wantErr: "unknown category",
		},
		{
			name:    "unknown certification",
			mutate:  func(r *ServiceRecord) { r.CertificationLevel = "DIAMOND" },
			wantErr: "certificationLevel",
		},
		{
			name: "endpoint path without slash",
			mutate: func(r *ServiceRecord) {
				r.Endpoints = []Endpoint{{Path: "verify", Method: "POST"}}
			},
			wantErr: "must start with /",
		},
		{
			name: "endpoint missing method",
			mutate: func(r *ServiceRecord) {
				r.Endpoints = []Endpoint{{Path: "/verify"}}
			},
			wantErr: "method is required",
		},
		{
			name: "bad probe method",
			mutate: func(r *ServiceRecord) {
				r.HealthCheck.Method = "DELETE"
			},
			wantErr: "GET, HEAD or POST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			errs := ValidateRecord(rec)
			if len(errs) == 0 {
				t.Fatalf("Expected validation errors, got none")
			}

			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected an error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateRecord_Itemizes(t *testing.T) {
	rec := &ServiceRecord{}
	errs := ValidateRecord(rec)

	// Empty payload should report each missing required field.
	if len(errs) < 5 {
		t.Errorf("Expected itemized errors for every missing field, got %d: %v", len(errs), errs)
	}
}

func TestHealthCheckSpecNormalize(t *testing.T) {
	var spec HealthCheckSpec
	spec.Normalize(5000)

	if spec.Path != "/health" {
		t.Errorf("Expected /health, got %s", spec.Path)
	}
	if spec.Method != "GET" {
		t.Errorf("Expected GET, got %s", spec.Method)
	}
	if spec.ExpectedStatusCode != 200 {
		t.Errorf("Expected 200, got %d", spec.ExpectedStatusCode)
	}
	if spec.TimeoutMs != 5000 {
		t.Errorf("Expected 5000, got %d", spec.TimeoutMs)
	}

	custom := HealthCheckSpec{Path: "/status", Method: "HEAD", ExpectedStatusCode: 204, TimeoutMs: 1500}
	custom.Normalize(5000)

	if custom.Path != "/status" || custom.Method != "HEAD" || custom.ExpectedStatusCode != 204 || custom.TimeoutMs != 1500 {
		t.Errorf("Normalize should not overwrite explicit values, got %+v", custom)
	}
}
