package probe

import "time"

// Status is the outcome class of a probe.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusError   Status = "error"
)

// Fingerprint identifies a file revision by modification time and size.
type Fingerprint struct {
	ModTime int64
	Size    int64
}

// IsZero reports whether the fingerprint was never observed.
func (f Fingerprint) IsZero() bool {
	return f.ModTime == 0 && f.Size == 0
}

// Result is the outcome of one deep inspection.
type Result struct {
	Status      Status
	Code        string
	Reason      string
	Fingerprint Fingerprint
	Elapsed     time.Duration
}

// Present builds a result for a file carrying code.
func Present(code string, fp Fingerprint) Result {
	return Result{Status: StatusPresent, Code: code, Fingerprint: fp}
}

// Absent builds a result for a readable file without a code.
func Absent(fp Fingerprint) Result {
	return Result{Status: StatusAbsent, Fingerprint: fp}
}

// Failed builds an error result.
func Failed(reason string, fp Fingerprint) Result {
	return Result{Status: StatusError, Reason: reason, Fingerprint: fp}
}
