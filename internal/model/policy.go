package model

import "fmt"

// CompletedPolicy selects how the completed extract collapses to scalars.
// The source systems diverged on this rule across revisions, so both stay
// supported as explicit configuration.
type CompletedPolicy string

const (
	// PolicyLastNonBlank takes the last non-blank subtotal, scanning from
	// the bottom of the extract: globally, and per unit with each unit's
	// first hit from the end winning.
	PolicyLastNonBlank CompletedPolicy = "last-non-blank"

	// PolicySumAll sums every non-blank subtotal, globally and per unit.
	PolicySumAll CompletedPolicy = "sum-all"
)

// ParseCompletedPolicy validates a policy name from config or flags.
func ParseCompletedPolicy(s string) (CompletedPolicy, error) {
	switch CompletedPolicy(s) {
	case PolicyLastNonBlank, PolicySumAll:
		return CompletedPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown completed policy %q (want %q or %q)", s, PolicyLastNonBlank, PolicySumAll)
	}
}
