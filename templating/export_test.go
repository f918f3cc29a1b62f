package templating

// TokenizeForTest exposes tokenize.
var TokenizeForTest = tokenize

// OpenOutputForTest exposes Engine.openOutput.
func OpenOutputForTest(
	en *Engine,
	outPath string,
	executable bool,
) (func() error, error) {
	_, closer, err := en.openOutput(outPath, executable)

	return closer, err
}
