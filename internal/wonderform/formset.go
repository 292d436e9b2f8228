package wonderform

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Management form field names, sent as {prefix}-{name}
const (
	TotalFormsField   = "TOTAL_FORMS"
	InitialFormsField = "INITIAL_FORMS"
	MinNumFormsField  = "MIN_NUM_FORMS"
	MaxNumFormsField  = "MAX_NUM_FORMS"
	DeleteField       = "DELETE"

	DefaultMaxNumForms = 1000
)

type managementForm struct {
	total   int
	initial int
	min     int
	max     int
}

func managementKey(prefix, name string) string {
	return prefix + "-" + name
}

func rowKey(prefix string, index int, field string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, index, field)
}

// parseManagementForm reads the counts that tell a formset how many rows
// were rendered. TOTAL_FORMS and INITIAL_FORMS are required; the bounds
// fall back to no minimum and DefaultMaxNumForms. A posted MAX_NUM_FORMS
// can only lower the limit.
func parseManagementForm(values url.Values, prefix string) (managementForm, bool) {
	total, ok := requiredCount(values, managementKey(prefix, TotalFormsField))
	if !ok {
		return managementForm{}, false
	}
	initial, ok := requiredCount(values, managementKey(prefix, InitialFormsField))
	if !ok || initial > total {
		return managementForm{}, false
	}

	mf := managementForm{total: total, initial: initial, max: DefaultMaxNumForms}
	if raw := strings.TrimSpace(values.Get(managementKey(prefix, MinNumFormsField))); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return managementForm{}, false
		}
		mf.min = n
	}
	if raw := strings.TrimSpace(values.Get(managementKey(prefix, MaxNumFormsField))); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return managementForm{}, false
		}
		mf.max = min(n, DefaultMaxNumForms)
	}
	return mf, true
}

func requiredCount(values url.Values, key string) (int, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// formset carries the bookkeeping shared by the nested formsets
type formset struct {
	prefix        string
	values        url.Values
	mgmt          managementForm
	nonFormErrors []string
	rowErrors     map[string][]string // keyed by {prefix}-{index}-{field}
}

func newFormset(prefix string, values url.Values) formset {
	return formset{prefix: prefix, values: values}
}

func (fs *formset) get(index int, field string) string {
	return strings.TrimSpace(fs.values.Get(rowKey(fs.prefix, index, field)))
}

func (fs *formset) deleted(index int) bool {
	switch strings.ToLower(fs.get(index, DeleteField)) {
	case "on", "true", "1":
		return true
	}
	return false
}

func (fs *formset) addRowError(index int, field, msg string) {
	if fs.rowErrors == nil {
		fs.rowErrors = make(map[string][]string)
	}
	key := rowKey(fs.prefix, index, field)
	fs.rowErrors[key] = append(fs.rowErrors[key], msg)
}

func (fs *formset) addNonFormError(msg string) {
	fs.nonFormErrors = append(fs.nonFormErrors, msg)
}

// readManagement loads the management form, recording a structural error
// when it is absent or malformed. Rows beyond DefaultMaxNumForms are never
// read.
func (fs *formset) readManagement() bool {
	mf, ok := parseManagementForm(fs.values, fs.prefix)
	if !ok {
		fs.addNonFormError(managementMessage)
		return false
	}
	if mf.total > DefaultMaxNumForms {
		fs.addNonFormError(fmt.Sprintf("Please submit at most %d forms.", mf.max))
		return false
	}
	fs.mgmt = mf
	return true
}

// checkBounds enforces MIN_NUM_FORMS and MAX_NUM_FORMS against the number
// of rows that survived cleaning
func (fs *formset) checkBounds(rows int) {
	if rows > fs.mgmt.max {
		fs.addNonFormError(fmt.Sprintf("Please submit at most %d forms.", fs.mgmt.max))
	}
	if rows < fs.mgmt.min {
		fs.addNonFormError(fmt.Sprintf("Please submit at least %d forms.", fs.mgmt.min))
	}
}

// Valid reports whether cleaning recorded no errors
func (fs *formset) Valid() bool {
	return len(fs.nonFormErrors) == 0 && len(fs.rowErrors) == 0
}

// Errors flattens formset errors: non-form errors first, then row errors
// ordered by field key
func (fs *formset) Errors() []string {
	msgs := append([]string{}, fs.nonFormErrors...)

	keys := make([]string, 0, len(fs.rowErrors))
	for k := range fs.rowErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, msg := range fs.rowErrors[k] {
			msgs = append(msgs, k+": "+msg)
		}
	}
	return msgs
}

// RowErrors returns the errors recorded against one row field
func (fs *formset) RowErrors(index int, field string) []string {
	return fs.rowErrors[rowKey(fs.prefix, index, field)]
}

// parseRating reads an optional integer that defaults to zero
func parseRating(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// changed reports whether a blank extra row carries any input. A zero is
// the rendered default and does not count.
func changed(raws ...string) bool {
	for _, raw := range raws {
		if raw != "" && raw != "0" {
			return true
		}
	}
	return false
}
