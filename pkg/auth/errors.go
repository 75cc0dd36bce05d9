package auth

import "strings"

// AuthenticationError reports that no security requirement was satisfied.
type AuthenticationError struct {
	// Failures holds one entry per requirement, in declaration order.
	Failures []RequirementFailure
}

// RequirementFailure describes why a single requirement failed.
type RequirementFailure struct {
	Schemes []string
	Reasons []string
}

func (f RequirementFailure) String() string {
	return "Requirement [" + strings.Join(f.Schemes, ", ") + "] failed: " + strings.Join(f.Reasons, "; ")
}

func (e *AuthenticationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return "Authentication failed: " + strings.Join(parts, " OR ")
}
