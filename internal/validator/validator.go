package validator

// Validator collects failed business-rule checks for a single user
// action. Each failure is keyed by a short machine-readable code (for
// example "too_long" or "date_future") mapped to the human-readable
// message that is surfaced to the user. The catalog rules are evaluated
// in a fixed order and stop at the first failure, so a Validator
// normally ends up holding at most one entry.
type Validator struct {
	Errors map[string]string
}

// New returns a Validator with an empty error map.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no checks have failed so far.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a failed check. If the same code is added twice the
// first message wins.
func (v *Validator) AddError(code, message string) {
	if _, exists := v.Errors[code]; !exists {
		v.Errors[code] = message
	}
}

// Check records the code and message when ok is false.
func (v *Validator) Check(ok bool, code, message string) {
	if !ok {
		v.AddError(code, message)
	}
}

// In returns true if value equals one of the permitted values.
func In(value string, permitted ...string) bool {
	for i := range permitted {
		if value == permitted[i] {
			return true
		}
	}
	return false
}
