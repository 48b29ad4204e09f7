package enums

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypePayment  FieldType = "payment"
)

// NeedsOptions reports whether the field type renders a fixed choice list.
func (t FieldType) NeedsOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeCheckbox
}
