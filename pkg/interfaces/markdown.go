package interfaces

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string `mapstructure:"extensions" json:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps" json:"hard_wraps"`
	// Unsafe allows raw HTML blocks from the document to pass through to the
	// render tree.
	Unsafe bool `mapstructure:"unsafe" json:"unsafe"`
}
