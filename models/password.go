package models

import "time"

// PasswordEntry is a stored credential.
//
// Title, Username, Password, URL and Note hold sealed envelopes at rest and
// plaintext only after the service layer opened them for a response.
type PasswordEntry struct {
	// ID is a UUIDv7 string; ordering by ID follows creation order.
	ID string `json:"id" bson:"id"`

	// UserID is the owner's Discord id.
	UserID string `json:"-" bson:"user_id"`

	Title    string `json:"title" bson:"title"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
	URL      string `json:"url" bson:"url"`
	Note     string `json:"note" bson:"note"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// TableName returns the name of the database table
// associated with the PasswordEntry model.
func (p PasswordEntry) TableName() string {
	return "passwords"
}

// SecretFields returns pointers to every field that is sealed at rest,
// in a stable order.
func (p *PasswordEntry) SecretFields() []*string {
	return []*string{&p.Title, &p.Username, &p.Password, &p.URL, &p.Note}
}

// SecretColumns returns the sealed fields keyed by their storage column
// name, matching the keys of [PasswordUpdate.Fields].
func (p PasswordEntry) SecretColumns() map[string]string {
	return map[string]string{
		"title":    p.Title,
		"username": p.Username,
		"password": p.Password,
		"url":      p.URL,
		"note":     p.Note,
	}
}

// AddPasswordRequest is the body of POST /api/passwords.
type AddPasswordRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Note     string `json:"note"`
}

// PasswordUpdate is a partial update of a [PasswordEntry].
// Only non-nil fields are written.
type PasswordUpdate struct {
	Title    *string `json:"title,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	URL      *string `json:"url,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u PasswordUpdate) IsEmpty() bool {
	return u.Title == nil && u.Username == nil && u.Password == nil && u.URL == nil && u.Note == nil
}

// Fields returns the set fields keyed by their storage column name.
func (u PasswordUpdate) Fields() map[string]string {
	fields := make(map[string]string, 5)
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("title", u.Title)
	set("username", u.Username)
	set("password", u.Password)
	set("url", u.URL)
	set("note", u.Note)
	return fields
}
