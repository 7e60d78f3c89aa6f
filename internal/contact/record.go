package contact

// Record is a single contact entry. The same shape is used for drafts in a
// form session and for committed records loaded from the store.
type Record struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
	City  string `json:"city" yaml:"city"`
	Email string `json:"email" yaml:"email"`
}

// Blank returns an empty draft carrying the given id.
func Blank(id string) Record {
	return Record{ID: id}
}

// Get returns the value of field f. Unknown fields read as "".
func (r Record) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldCity:
		return r.City
	case FieldEmail:
		return r.Email
	default:
		return ""
	}
}

// Set assigns value to field f. It reports false for unknown fields.
func (r *Record) Set(f Field, value string) bool {
	switch f {
	case FieldName:
		r.Name = value
	case FieldPhone:
		r.Phone = value
	case FieldCity:
		r.City = value
	case FieldEmail:
		r.Email = value
	default:
		return false
	}
	return true
}

// Valid reports whether all four fields are non-empty. Phone format is
// enforced when the field is edited, not here.
func (r Record) Valid() bool {
	return len(r.Missing()) == 0
}

// Missing lists the empty fields in form order.
func (r Record) Missing() []Field {
	var missing []Field
	for _, f := range Fields() {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IsBlank reports whether no field has been filled in yet.
func (r Record) IsBlank() bool {
	return len(r.Missing()) == len(Fields())
}
