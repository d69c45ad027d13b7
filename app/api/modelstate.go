package api

// Well-known model state keys.
const (
	KeyCustomerError  = "CustomerError"
	KeyDuplicateError = "DuplicateError"
	KeyInvalidError   = "InvalidError"
	KeyReferenceError = "ReferenceError"
	KeyPatchError     = "PatchError"
	KeyBody           = "Body"
)

// ModelState collects validation messages by key. It serializes as
// {"Key": ["message", ...]}.
type ModelState map[string][]string

func NewModelState() ModelState {
	return ModelState{}
}

// AddError appends message under key.
func (m ModelState) AddError(key, message string) {
	m[key] = append(m[key], message)
}

// IsValid reports whether no errors were recorded.
func (m ModelState) IsValid() bool {
	return len(m) == 0
}
