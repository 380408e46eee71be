// Package entry applies partial updates to a single entry while keeping
// its fields consistent with its variant.
package entry

import (
	"github.com/atinyakov/AuthKeeper/internal/models"
	"github.com/atinyakov/AuthKeeper/internal/tags"
)

// Apply merges f into e. The order of the steps matters: the variant is
// settled before the secret is considered, so a single update carrying
// AuthLocal and a secret stores it, while one carrying AuthLDAP drops it.
func Apply(e *models.Entry, f models.Fields) {
	if f.TagsInput != nil {
		e.TagsInput = *f.TagsInput
		e.Tags = tags.Split(e.TagsInput)
	}

	if f.AuthType != nil {
		e.AuthType = *f.AuthType
		// A secret only exists for local entries.
		if e.AuthType != models.AuthLocal {
			e.Secret = nil
		}
	}

	if f.Username != nil {
		e.Username = *f.Username
	}

	if f.Secret != nil && e.AuthType == models.AuthLocal {
		s := *f.Secret
		e.Secret = &s
	}
}
