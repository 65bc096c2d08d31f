// Package extract pulls candidate profile fields out of free-text
// utterances and validates them.
package extract

// Field names a candidate profile field.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldExperience Field = "years_experience"
	FieldPosition   Field = "position"
	FieldLocation   Field = "location"
	FieldTechStack  Field = "tech_stack"
)

// AllFields is every profile field in the order they are solicited.
var AllFields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldExperience,
	FieldPosition, FieldLocation, FieldTechStack,
}

// Label is the human-readable name used in prompts.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "full name"
	case FieldEmail:
		return "email address"
	case FieldPhone:
		return "phone number"
	case FieldExperience:
		return "years of experience"
	case FieldPosition:
		return "desired position"
	case FieldLocation:
		return "current location"
	case FieldTechStack:
		return "tech stack"
	}
	return string(f)
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// Order returns f's position in AllFields, or -1.
func (f Field) Order() int {
	for i, known := range AllFields {
		if f == known {
			return i
		}
	}
	return -1
}
