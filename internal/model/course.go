package model

// Course is one enrollable class in the known course table.
type Course struct {
	Code string `validate:"required,alphanum,min=6,max=10"`
	Name string `validate:"required"`
}
