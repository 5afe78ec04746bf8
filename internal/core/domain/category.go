package domain

// UnknownCategory is returned when a predicted identifier has no entry in the table.
const UnknownCategory = "Unknown"

// Prediction is the classifier output for one normalized text.
type Prediction struct {
	ClassID  int    `json:"class_id"`
	Category string `json:"category"`
	Known    bool   `json:"known_category"`
}

type Category struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
