package config

import "fmt"

// DomainConfig holds the configurable business rules of a causal graph.
type DomainConfig struct {
	// Graph constraints
	MaxNodesPerGraph   int
	MaxEdgesPerGraph   int
	MaxFactorsPerGraph int
	DefaultGraphName   string

	// Node and factor constraints
	MaxLabelLength       int
	MaxFactorTextLength  int
	FactorLabelMaxLength int

	// Edge constraints
	AllowSelfLoops bool

	// Analysis
	LoopBreakerMinDegree int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerGraph:   10000,
		MaxEdgesPerGraph:   50000,
		MaxFactorsPerGraph: 10000,
		DefaultGraphName:   "Untitled Analysis",

		MaxLabelLength:       200,
		MaxFactorTextLength:  2000,
		FactorLabelMaxLength: 50,

		AllowSelfLoops: true,

		LoopBreakerMinDegree: 3,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// DFS recursion depth grows with graph size
	config.MaxNodesPerGraph = 2000
	config.MaxEdgesPerGraph = 10000
	config.MaxFactorsPerGraph = 2000

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxNodesPerGraph = 100000
	config.MaxEdgesPerGraph = 500000
	config.MaxFactorsPerGraph = 100000

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxNodesPerGraph <= 0 || c.MaxEdgesPerGraph <= 0 || c.MaxFactorsPerGraph <= 0 {
		return fmt.Errorf("graph limits must be positive")
	}
	if c.MaxLabelLength <= 0 {
		return fmt.Errorf("max label length must be positive")
	}
	if c.FactorLabelMaxLength <= 0 || c.FactorLabelMaxLength > c.MaxLabelLength {
		return fmt.Errorf("factor label length must be between 1 and %d", c.MaxLabelLength)
	}
	if c.LoopBreakerMinDegree < 1 {
		return fmt.Errorf("loop breaker degree threshold must be at least 1")
	}
	return nil
}
