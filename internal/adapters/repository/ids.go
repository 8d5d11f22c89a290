package repository

import "github.com/google/uuid"

// canonicalID returns id in the lowercase hyphenated form entries are stored
// under. uuid.Parse also accepts the urn:uuid:, braced and bare-hex spellings,
// which PostgreSQL's uuid type does not. ok is false when id is not a UUID.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}

	return u.String(), true
}
