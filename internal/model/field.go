package model

import (
	"fmt"
	"strings"
)

// Field names a bookmark column.
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldURL       Field = "url"
	FieldNotes     Field = "notes"
	FieldDateAdded Field = "date_added"
)

// EditableFields are the fields a user may change after creation.
var EditableFields = []Field{FieldTitle, FieldURL, FieldNotes}

// ParseField maps user input to an editable field, ignoring case.
func ParseField(s string) (Field, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, f := range EditableFields {
		if string(f) == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}
