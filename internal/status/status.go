package status

import "strings"

// State is the coarse running state derived from the engine's STATUS column.
type State string

const (
	StateNotFound State = "not_found"
	StateStopped  State = "stopped"
	StateRunning  State = "running"
	StateUnknown  State = "unknown"
)

// ServiceStatus is a point-in-time view of one engine-managed container.
// It is derived fresh on every query and never persisted.
type ServiceStatus struct {
	Name  string   `json:"name"`
	State State    `json:"state"`
	Ports []string `json:"ports"`
}

// Running reports whether the status describes a running container.
func (s ServiceStatus) Running() bool { return s.State == StateRunning }

// Filter returns the statuses whose name contains pattern as a substring.
// An empty pattern matches everything.
func Filter(all []ServiceStatus, pattern string) []ServiceStatus {
	if pattern == "" {
		return all
	}
	out := make([]ServiceStatus, 0, len(all))
	for _, s := range all {
		if strings.Contains(s.Name, pattern) {
			out = append(out, s)
		}
	}
	return out
}

// AnyRunning reports whether at least one status in the list is running.
func AnyRunning(list []ServiceStatus) bool {
	for _, s := range list {
		if s.Running() {
			return true
		}
	}
	return false
}
