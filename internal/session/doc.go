// Package session holds the Form Session: the ordered list of uncommitted
// drafts being edited. A session is never empty; it always holds at least
// one, possibly blank, draft.
//
// Input-time constraints live here. Phone accepts digits only, up to
// Limits.PhoneMax runes; name accepts up to Limits.NameMax runes. Values
// that break a constraint are rejected and the draft is left unchanged,
// mirroring a form input that ignores the offending keystroke. All values
// are NFC-normalized before they are measured or stored.
package session
