package configs

// Configurable is a provided value that can be set from config files.
// ConfigExpr is its CUE path.
type Configurable interface {
	ConfigExpr() string
}

// Get looks up T at its own config path, returning the zero value when unset.
func Get[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigExpr())
}
