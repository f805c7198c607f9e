package mines

type ConfigError struct {
	Field   string
	message string
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return "invalid " + e.Field + ": " + e.message
}
