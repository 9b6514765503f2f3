package canonical

import (
	"fmt"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// BootstrapIdentity is the RegisteredBy value on seeded records.
const BootstrapIdentity = "chittyos-bootstrap"

// Mapper converts seeds into catalog records.
type Mapper struct{}

// NewMapper creates a mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapSeeds converts seeds to service records, skipping entries that
// are not well-formed. Seeded records carry full trust and the
// canonical metadata flag.
func (m *Mapper) MapSeeds(seeds []Seed, now time.Time) ([]*domain.ServiceRecord, error) {
	records := make([]*domain.ServiceRecord, 0, len(seeds))

	for _, seed := range seeds {
		rec := m.mapSeed(seed, now)
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid canonical seeds")
	}

	return records, nil
}

func (m *Mapper) mapSeed(seed Seed, now time.Time) *domain.ServiceRecord {
	if seed.ServiceName == "" || seed.BaseURL == "" {
		return nil
	}

	category := domain.Category(seed.Category)
	if !domain.ValidCategory(category) {
		return nil
	}

	version := seed.Version
	if version == "" {
		version = "1.0.0"
	}

	displayName := seed.DisplayName
	if displayName == "" {
		displayName = seed.ServiceName
	}

	metadata := map[string]string{domain.MetaCanonical: "true"}
	for k, v := range seed.Metadata {
		metadata[k] = v
	}
	// The canonical flag is not overridable from the seed file.
	metadata[domain.MetaCanonical] = "true"

	rec := &domain.ServiceRecord{
		ChittyID:     seed.ChittyID,
		ServiceName:  seed.ServiceName,
		DisplayName:  displayName,
		Description:  seed.Description,
		Version:      version,
		BaseURL:      seed.BaseURL,
		Category:     category,
		Capabilities: seed.Capabilities,
		Dependencies: seed.Dependencies,
		TrustScore:   100,
		TrustLevel:   domain.TrustPlatinum,
		Metadata:     metadata,
		RegisteredAt: now,
		LastUpdated:  now,
		RegisteredBy: BootstrapIdentity,
	}

	rec.HealthCheck = domain.HealthCheckSpec{Path: seed.HealthPath}

	return rec
}

// Records resolves the effective seed list: the file at path when
// set, the built-in Defaults otherwise.
func Records(path string, now time.Time) ([]*domain.ServiceRecord, error) {
	seeds := Defaults()
	if path != "" {
		config, err := NewLoader(path).Load()
		if err != nil {
			return nil, err
		}
		seeds = config.Services
	}
	return NewMapper().MapSeeds(seeds, now)
}
