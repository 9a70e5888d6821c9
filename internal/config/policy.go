package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LeavePolicy lists the default entitlement granted to every new employee.
type LeavePolicy struct {
	Entitlements []Entitlement `yaml:"entitlements"`
}

type Entitlement struct {
	LeaveType string `yaml:"leave_type"`
	Days      int    `yaml:"days"`
}

// LoadLeavePolicy reads the YAML policy file. A missing file yields an
// empty policy so new employees simply start with no balance.
func LoadLeavePolicy(path string) (*LeavePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LeavePolicy{}, nil
		}
		return nil, fmt.Errorf("read leave policy: %w", err)
	}
	return ParseLeavePolicy(data)
}

func ParseLeavePolicy(data []byte) (*LeavePolicy, error) {
	var p LeavePolicy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode leave policy: %w", err)
	}
	if err := p.validateAndNormalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *LeavePolicy) validateAndNormalize() error {
	seen := make(map[string]struct{}, len(p.Entitlements))
	for i := range p.Entitlements {
		e := &p.Entitlements[i]
		e.LeaveType = strings.TrimSpace(e.LeaveType)
		if e.LeaveType == "" {
			return fmt.Errorf("leave policy: entitlement %d has no leave_type", i)
		}
		if e.Days < 0 {
			return fmt.Errorf("leave policy: %s has negative days", e.LeaveType)
		}
		if _, dup := seen[e.LeaveType]; dup {
			return fmt.Errorf("leave policy: %s listed twice", e.LeaveType)
		}
		seen[e.LeaveType] = struct{}{}
	}
	return nil
}

// Defaults returns a fresh leave-type to days map.
func (p *LeavePolicy) Defaults() map[string]int {
	out := make(map[string]int, len(p.Entitlements))
	for _, e := range p.Entitlements {
		out[e.LeaveType] = e.Days
	}
	return out
}
