package model

// Model defines how to transform to an API model for a given interface.
type Model interface {
	// Import transforms to an API model.
	Import(interface{}) error
}
