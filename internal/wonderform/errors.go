package wonderform

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotValidated = errors.New("wonderform: Save called before IsValid")
	ErrInvalid      = errors.New("wonderform: form has validation errors")
	ErrNoStore      = errors.New("wonderform: no store configured")
)

const (
	AreteRequiredMessage  = "Charms and Talismans must have Arete ratings"
	ResonanceTotalMessage = "Resonance total must match or exceed rank"

	requiredMessage      = "This field is required."
	wholeNumberMessage   = "Enter a whole number."
	invalidChoiceMessage = "Select a valid choice. That choice is not one of the available choices."
	managementMessage    = "ManagementForm data is missing or has been tampered with."
)

// Errors holds field errors keyed by field name plus errors that belong to
// the form as a whole
type Errors struct {
	Fields   map[string][]string `json:"fields,omitempty"`
	NonField []string            `json:"nonField,omitempty"`
}

func (e *Errors) AddField(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *Errors) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

func (e Errors) Empty() bool {
	return len(e.Fields) == 0 && len(e.NonField) == 0
}

// Field returns the messages recorded against a field
func (e Errors) Field(name string) []string {
	return e.Fields[name]
}

// Messages flattens every message, non-field first, then fields by name
func (e Errors) Messages() []string {
	msgs := append([]string{}, e.NonField...)

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, msg := range e.Fields[name] {
			msgs = append(msgs, name+": "+msg)
		}
	}
	return msgs
}

// Contains reports whether any message contains substr
func (e Errors) Contains(substr string) bool {
	for _, msg := range e.Messages() {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func (e Errors) String() string {
	return strings.Join(e.Messages(), "; ")
}
