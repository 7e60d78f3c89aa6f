// Package contact defines the contact record shared by every layer of the
// form manager: the draft edited in a form session, the value persisted in
// the key-value store and the row shown in the record view.
//
// A record's ID is generated once, when its draft is created, and is reused
// as the store key for the record's whole life. IDs come from an injected
// IDGenerator so that tests and scenarios can run with predictable keys.
package contact
