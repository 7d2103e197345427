// Package columns infers the semantic role of each CSV column from the
// header row. Role detection is heuristic: header names are matched
// case-insensitively against a fixed synonym table per role.
package columns

import (
	"regexp"
	"strings"

	"tmerle/ledgerstage/internal/pipelineerror"
)

// Role is the semantic meaning assigned to a CSV column.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleType        Role = "type"
	RoleCategory    Role = "category"
)

// roleOrder fixes the order in which roles are tested against a header
// token. The first role whose pattern matches wins the column.
var roleOrder = []Role{RoleDate, RoleDescription, RoleAmount, RoleType, RoleCategory}

// mandatoryRoles must all be assigned or the file is rejected before any
// data row is processed.
var mandatoryRoles = []Role{RoleDate, RoleDescription, RoleAmount}

// rolePatterns is the header synonym table. Patterns are anchored and
// matched case-insensitively against the trimmed header token. New
// synonyms are additive edits here, not control-flow changes.
var rolePatterns = map[Role][]*regexp.Regexp{
	RoleDate: {
		regexp.MustCompile(`(?i)^date$`),
		regexp.MustCompile(`(?i)^transaction date$`),
		regexp.MustCompile(`(?i)^posted date$`),
	},
	RoleDescription: {
		regexp.MustCompile(`(?i)^description$`),
		regexp.MustCompile(`(?i)^memo$`),
		regexp.MustCompile(`(?i)^transaction$`),
		regexp.MustCompile(`(?i)^details$`),
	},
	RoleAmount: {
		regexp.MustCompile(`(?i)^amount$`),
		regexp.MustCompile(`(?i)^value$`),
		regexp.MustCompile(`(?i)^sum$`),
		regexp.MustCompile(`(?i)^total$`),
	},
	RoleType: {
		regexp.MustCompile(`(?i)^type$`),
		regexp.MustCompile(`(?i)^transaction type$`),
		regexp.MustCompile(`(?i)^debit/credit$`),
	},
	RoleCategory: {
		regexp.MustCompile(`(?i)^category$`),
		regexp.MustCompile(`(?i)^merchant$`),
		regexp.MustCompile(`(?i)^vendor$`),
	},
}

// RoleMap maps each detected role to its zero-based column index.
type RoleMap map[Role]int

// Index returns the column index for a role and whether it was assigned.
func (m RoleMap) Index(role Role) (int, bool) {
	idx, ok := m[role]
	return idx, ok
}

// Has reports whether the role was assigned a column.
func (m RoleMap) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// DetectRoles assigns each header column to at most one role. The first
// role matching a column wins, and a role keeps the first column it was
// assigned. Returns a FileRejectedError naming the missing roles when any
// mandatory role stays unassigned.
func DetectRoles(header []string) (RoleMap, error) {
	roles := make(RoleMap)

	for idx, token := range header {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		for _, role := range roleOrder {
			if roles.Has(role) {
				continue
			}
			if matchesRole(role, token) {
				roles[role] = idx
				break
			}
		}
	}

	var missing []string
	for _, role := range mandatoryRoles {
		if !roles.Has(role) {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return nil, &pipelineerror.FileRejectedError{MissingRoles: missing}
	}

	return roles, nil
}

func matchesRole(role Role, token string) bool {
	for _, pattern := range rolePatterns[role] {
		if pattern.MatchString(token) {
			return true
		}
	}
	return false
}
