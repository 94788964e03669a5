package validation

import "fmt"

// Result accumulates findings. Errors make a record unusable; warnings are
// surfaced but never block.
type Result struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func NewResult() Result {
	return Result{Valid: true, Errors: []string{}, Warnings: []string{}}
}

func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *Result) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge returns a new result holding both sets of findings. Validity is the
// AND of both sides.
func (r Result) Merge(other Result) Result {
	out := Result{
		Valid:    r.Valid && other.Valid,
		Errors:   make([]string, 0, len(r.Errors)+len(other.Errors)),
		Warnings: make([]string, 0, len(r.Warnings)+len(other.Warnings)),
	}
	out.Errors = append(append(out.Errors, r.Errors...), other.Errors...)
	out.Warnings = append(append(out.Warnings, r.Warnings...), other.Warnings...)
	return out
}

// Prefixed returns a copy with every message prefixed.
func (r Result) Prefixed(prefix string) Result {
	out := Result{
		Valid:    r.Valid,
		Errors:   make([]string, 0, len(r.Errors)),
		Warnings: make([]string, 0, len(r.Warnings)),
	}
	for _, msg := range r.Errors {
		out.Errors = append(out.Errors, prefix+msg)
	}
	for _, msg := range r.Warnings {
		out.Warnings = append(out.Warnings, prefix+msg)
	}
	return out
}

// Clean reports a valid result with no warnings.
func (r Result) Clean() bool {
	return r.Valid && len(r.Warnings) == 0
}
