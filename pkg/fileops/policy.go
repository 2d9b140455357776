package fileops

import (
	"fmt"
	"strings"
)

// ConflictPolicy selects what a move or copy does when its destination already exists.
// The zero value is FailOnConflict.
type ConflictPolicy int

const (
	// FailOnConflict refuses to replace an existing destination.
	FailOnConflict ConflictPolicy = iota
	// SkipOnConflict leaves an existing destination alone and reports it as the result.
	SkipOnConflict
	// Overwrite removes an existing destination before transferring.
	Overwrite
	// RenameWithNumber transfers to the next free "name (N).ext" beside the destination.
	RenameWithNumber
	// OverwriteIfSourceLarger replaces the destination only when the source has more bytes.
	OverwriteIfSourceLarger
	// OverwriteIfSourceNewer replaces the destination only when the source was modified later.
	OverwriteIfSourceNewer
)

// Policies lists every conflict policy in declaration order.
var Policies = []ConflictPolicy{
	FailOnConflict,
	SkipOnConflict,
	Overwrite,
	RenameWithNumber,
	OverwriteIfSourceLarger,
	OverwriteIfSourceNewer,
}

var policyNames = map[ConflictPolicy]string{
	FailOnConflict:          "fail",
	SkipOnConflict:          "skip",
	Overwrite:               "overwrite",
	RenameWithNumber:        "rename",
	OverwriteIfSourceLarger: "larger",
	OverwriteIfSourceNewer:  "newer",
}

var policyAliases = map[string]ConflictPolicy{
	"fail-on-conflict":           FailOnConflict,
	"failonconflict":             FailOnConflict,
	"skip-on-conflict":           SkipOnConflict,
	"skiponconflict":             SkipOnConflict,
	"rename-with-number":         RenameWithNumber,
	"renamewithnumber":           RenameWithNumber,
	"overwrite-if-source-larger": OverwriteIfSourceLarger,
	"overwriteifsourcelarger":    OverwriteIfSourceLarger,
	"overwrite-if-source-newer":  OverwriteIfSourceNewer,
	"overwriteifsourcenewer":     OverwriteIfSourceNewer,
}

func (p ConflictPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("ConflictPolicy(%d)", int(p))
}

// Valid reports whether p is one of the six known policies.
func (p ConflictPolicy) Valid() bool {
	_, ok := policyNames[p]
	return ok
}

// Description returns a one-line human description of the policy.
func (p ConflictPolicy) Description() string {
	switch p {
	case FailOnConflict:
		return "Fail if the destination exists"
	case SkipOnConflict:
		return "Keep the existing destination"
	case Overwrite:
		return "Replace the destination"
	case RenameWithNumber:
		return "Write to the next free numbered name"
	case OverwriteIfSourceLarger:
		return "Replace only if the source is larger"
	case OverwriteIfSourceNewer:
		return "Replace only if the source is newer"
	}
	return p.String()
}

// ParseConflictPolicy parses a policy name. Both the short names ("rename") and the
// long forms ("rename-with-number", "RenameWithNumber") are accepted, case-insensitively.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for p, name := range policyNames {
		if name == key {
			return p, nil
		}
	}
	if p, ok := policyAliases[key]; ok {
		return p, nil
	}
	return 0, newError("parse policy", "", ErrUnsupportedPolicy, "unknown conflict policy %q", s)
}

func (p ConflictPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, newError("marshal policy", "", ErrUnsupportedPolicy, "unknown conflict policy %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Operation is the transfer a request performs.
type Operation int

const (
	OpMove Operation = iota
	OpCopy
)

func (o Operation) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpCopy:
		return "copy"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Outcome tells whether a request transferred anything.
type Outcome int

const (
	OutcomePerformed Outcome = iota
	OutcomeSkipped
)

func (o Outcome) String() string {
	if o == OutcomeSkipped {
		return "skipped"
	}
	return "performed"
}

// OperationRequest describes one move or copy.
type OperationRequest struct {
	Op          Operation
	Source      string
	Destination string
	Policy      ConflictPolicy
}

// OperationResult reports where the data ended up. ResolvedPath differs from the
// requested destination under RenameWithNumber.
type OperationResult struct {
	ResolvedPath string
	Outcome      Outcome
}
