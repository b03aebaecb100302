package domain

import "time"

// Bookmark is one saved link for one user.
// Rows are immutable after creation: there is no edit operation,
// only insert, list and delete.
type Bookmark struct {
	// ID is the canonical unique identifier, assigned by the store.
	ID string `db:"id" json:"id"`

	// UserID is the owning user. Bookmarks are only ever listed
	// scoped to their owner.
	UserID string `db:"user_id" json:"user_id"`

	// URL is the source URL as submitted (already validated).
	URL string `db:"url" json:"url"`

	// Title is derived or extracted and never empty; it falls back
	// to the domain or "Untitled".
	Title string `db:"title" json:"title"`

	// Description may be empty.
	Description string `db:"description" json:"description"`

	// Favicon is an absolute URL, or empty when none could be resolved.
	Favicon string `db:"favicon" json:"favicon"`

	// Summary is always a non-empty string: a real summary, a
	// no-summary notice, or a fallback message.
	Summary string `db:"summary" json:"summary"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PageMetadata is the ephemeral result of enriching a URL.
// It has no identity and no lifecycle beyond the call that produced it.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	Summary     string `json:"summary"`
}

// User is the identity asserted by the auth layer. The rest of the
// system treats it as an opaque id plus email and never inspects it
// beyond that.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
