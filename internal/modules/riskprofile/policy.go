package riskprofile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Policy holds the profile-determination cutoffs. These moved around
// between product revisions, so they are configuration, not structure:
// the defaults can be overridden from a TOML file.
type Policy struct {
	// AggressiveMin is the absolute aggressive score required for the
	// aggressive profile.
	AggressiveMin int `toml:"aggressive_min"`
	// ModerateMin/ModerateMax bound the moderate band.
	ModerateMin int `toml:"moderate_min"`
	ModerateMax int `toml:"moderate_max"`
	// ConservativeFloor is the minimum conservative score forced when a
	// hard override (low drawdown tolerance, loss fear) collapses the
	// profile to conservative.
	ConservativeFloor int `toml:"conservative_floor"`
}

// DefaultPolicy returns the current production cutoffs.
func DefaultPolicy() Policy {
	return Policy{
		AggressiveMin:     15,
		ModerateMin:       8,
		ModerateMax:       14,
		ConservativeFloor: 8,
	}
}

// policyFile is the on-disk shape of the combined policy override.
type policyFile struct {
	Risk Policy `toml:"risk"`
}

// LoadPolicy reads a policy override from a TOML file. A missing path
// returns the defaults unchanged.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return policy, fmt.Errorf("policy file not found: %s", path)
	}

	var file policyFile
	file.Risk = policy
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return policy, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return file.Risk, nil
}
