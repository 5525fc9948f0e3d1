package unit

// Default is the [Registry] that the package level functions use.
// It's configured from the environment with [ConfigFromEnv].
var Default = NewRegistry(WithConfig(ConfigFromEnv()))

// Test declares and registers a test with the [Default] registry.
// See [Registry.Test].
func Test(name string, body TestFunc) *T {
	file, line := callerOf(1)
	return Default.Add(name, file, line, body)
}

// RunTests runs the [Default] registry's tests.
// See [Registry.RunTests].
func RunTests() bool {
	return Default.RunTests()
}

// Run runs the [Default] registry's tests.
// See [Registry.Run].
func Run() (*Report, error) {
	return Default.Run()
}

// Main runs the [Default] registry's tests and exits with status 1 if anything failed.
// It returns normally if everything passed.
func Main() {
	if !RunTests() {
		exit(1)
	}
}
