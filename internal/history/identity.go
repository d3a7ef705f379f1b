package history

import "strings"

// IdentityFilter matches author names that contain any configured identity, ignoring case.
type IdentityFilter struct {
	loweredIdentities []string
}

// NewIdentityFilter builds a filter; blank identities are ignored.
func NewIdentityFilter(identities []string) IdentityFilter {
	loweredIdentities := make([]string, 0, len(identities))
	for _, identity := range identities {
		trimmedIdentity := strings.TrimSpace(identity)
		if len(trimmedIdentity) == 0 {
			continue
		}
		loweredIdentities = append(loweredIdentities, strings.ToLower(trimmedIdentity))
	}
	return IdentityFilter{loweredIdentities: loweredIdentities}
}

// Empty reports whether the filter has no identities and therefore matches nothing.
func (filter IdentityFilter) Empty() bool {
	return len(filter.loweredIdentities) == 0
}

// Matches reports whether the author contains any identity as a case-insensitive substring.
func (filter IdentityFilter) Matches(author string) bool {
	loweredAuthor := strings.ToLower(author)
	for _, identity := range filter.loweredIdentities {
		if strings.Contains(loweredAuthor, identity) {
			return true
		}
	}
	return false
}
