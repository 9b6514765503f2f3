package redis

const (
	// KeyPrefixService is the prefix for service record keys
	KeyPrefixService = "chitty:service:"
	// KeyPrefixHealth is the prefix for health snapshot keys
	KeyPrefixHealth = "chitty:health:"
	// KeyPrefixCategory is the prefix for per-category index sets
	KeyPrefixCategory = "chitty:category:"
	// KeyAllServices is the key for the set of all service names
	KeyAllServices = "chitty:services:all"
)

// ServiceKey returns the Redis key for a service record
func ServiceKey(name string) string {
	return KeyPrefixService + name
}

// HealthKey returns the Redis key for a health snapshot
func HealthKey(name string) string {
	return KeyPrefixHealth + name
}

// CategoryKey returns the Redis key for a category index set
func CategoryKey(category string) string {
	return KeyPrefixCategory + category
}

// AllServicesKey returns the key for the set of all service names
func AllServicesKey() string {
	return KeyAllServices
}
