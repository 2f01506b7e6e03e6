package validation

import (
	"strings"

	"orusweb/internal/models"

	"github.com/shopspring/decimal"
)

const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldNumber   = "number"
	FieldEmail    = "email"
	FieldFile     = "file"
	FieldSelect   = "select"
)

// ManualFields applies gateway-supplied field descriptors to the submitted
// values. Validation rules come as "required" or "nullable"; anything not
// nullable is treated as required.
func ManualFields(fields []models.ManualField, values map[string]string, files []models.KYCFile) Errors {
	v := New()
	uploaded := make(map[string]bool, len(files))
	for _, f := range files {
		if len(f.Content) > 0 {
			uploaded[f.Field] = true
		}
	}

	for _, f := range fields {
		required := !strings.Contains(strings.ToLower(f.Validation), "nullable")

		if f.Type == FieldFile {
			v.Check(!required || uploaded[f.Name], f.Name, "please attach "+label(f))
			continue
		}

		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			v.Check(!required, f.Name, label(f)+" is required")
			continue
		}

		switch f.Type {
		case FieldNumber:
			_, err := decimal.NewFromString(value)
			v.Check(err == nil, f.Name, label(f)+" must be a number")
		case FieldEmail:
			v.Email(f.Name, value)
		case FieldSelect:
			if len(f.Options) > 0 {
				v.Check(contains(f.Options, value), f.Name, label(f)+" has an invalid option")
			}
		}
	}

	if v.Valid() {
		return nil
	}
	return v.Errors
}

func label(f models.ManualField) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
