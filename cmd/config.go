package cmd

// Config carries all runtime configuration, loaded from the environment by
// the application entry point.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TaxRateBasisPoints is the tax policy in basis points (800 = 8%).
	TaxRateBasisPoints int64

	// CompletionGraceMinutes is how long a delivered order waits for the
	// customer's confirmation before the sweep finalizes it.
	CompletionGraceMinutes int
}
