// Package models defines the core data structures for authentication entries.
package models

// AuthType selects how an entry authenticates.
type AuthType string

const (
	// AuthUnset is the variant of a freshly created entry.
	AuthUnset AuthType = ""
	// AuthLDAP authenticates against a directory service.
	AuthLDAP AuthType = "LDAP"
	// AuthLocal authenticates with a locally stored secret.
	AuthLocal AuthType = "LOCAL"
)

// Valid reports whether t is one of the known variants.
func (t AuthType) Valid() bool {
	switch t {
	case AuthUnset, AuthLDAP, AuthLocal:
		return true
	}
	return false
}

// Tag is a normalized label derived from an entry's tags input.
type Tag struct {
	Text string `json:"text"`
}

// Entry is one authentication-credential profile.
type Entry struct {
	// ID is the unique identifier assigned at creation.
	ID string `json:"id"`
	// Tags is derived from TagsInput and never edited directly.
	Tags []Tag `json:"tags"`
	// TagsInput is the user's literal ';'-delimited input.
	TagsInput string `json:"tagsInput"`
	// AuthType is the entry variant.
	AuthType AuthType `json:"authType"`
	// Username is the login name used by the consuming application.
	Username string `json:"username"`
	// Secret is only set for AuthLocal entries.
	Secret *string `json:"secret"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	out := e
	out.Tags = make([]Tag, len(e.Tags))
	copy(out.Tags, e.Tags)
	if e.Secret != nil {
		s := *e.Secret
		out.Secret = &s
	}
	return out
}

// Equal reports whether e and o are structurally equal.
func (e Entry) Equal(o Entry) bool {
	if e.ID != o.ID || e.TagsInput != o.TagsInput || e.AuthType != o.AuthType || e.Username != o.Username {
		return false
	}
	if (e.Secret == nil) != (o.Secret == nil) {
		return false
	}
	if e.Secret != nil && *e.Secret != *o.Secret {
		return false
	}
	if len(e.Tags) != len(o.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != o.Tags[i] {
			return false
		}
	}
	return true
}

// CloneEntries deep-copies a collection. The result is never nil.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// EqualEntries reports whether two collections hold equal entries in the same order.
func EqualEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Fields is a partial update of an entry. A nil field is absent from the update.
type Fields struct {
	TagsInput *string   `json:"tagsInput,omitempty"`
	AuthType  *AuthType `json:"authType,omitempty"`
	Username  *string   `json:"username,omitempty"`
	Secret    *string   `json:"secret,omitempty"`
}
