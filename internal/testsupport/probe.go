package testsupport

import (
	"context"
	"sync"

	"tracklink/internal/probe"
)

// FakeProbe serves canned probe results and counts reads per location.
type FakeProbe struct {
	mu           sync.Mutex
	results      map[string]probe.Result
	fingerprints map[string]probe.Fingerprint
	calls        map[string]int
}

// NewFakeProbe returns a probe that reports absent for unknown locations.
func NewFakeProbe() *FakeProbe {
	return &FakeProbe{
		results:      make(map[string]probe.Result),
		fingerprints: make(map[string]probe.Fingerprint),
		calls:        make(map[string]int),
	}
}

// Set registers the result returned for location.
func (f *FakeProbe) Set(location string, result probe.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[location] = result
	f.fingerprints[location] = result.Fingerprint
}

// Probe implements matcher.Prober.
func (f *FakeProbe) Probe(_ context.Context, location string) probe.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[location]++
	if result, ok := f.results[location]; ok {
		return result
	}
	return probe.Absent(probe.Fingerprint{})
}

// Fingerprint implements matcher.Prober.
func (f *FakeProbe) Fingerprint(location string) (probe.Fingerprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fingerprints[location], nil
}

// Calls returns how many times location was probed.
func (f *FakeProbe) Calls(location string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[location]
}

// TotalCalls returns the number of probes across all locations.
func (f *FakeProbe) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}
