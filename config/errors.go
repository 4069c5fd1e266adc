package config

// ConfigurationError reports a configuration that cannot be used.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}
