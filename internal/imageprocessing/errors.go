package imageprocessing

import "fmt"

// InputError reports an input that is missing, unreadable or not an image.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to read image %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// FormatUnsupportedError reports a decoded image that is not 8-bit RGBA
// while strict format checking is on.
type FormatUnsupportedError struct {
	Format string
	Model  string
}

func (e *FormatUnsupportedError) Error() string {
	return fmt.Sprintf("unsupported image format %s (%s): 8-bit RGBA png required", e.Format, e.Model)
}

// InvalidFactorError reports a quantization factor outside 1..255.
type InvalidFactorError struct {
	Factor int
}

func (e *InvalidFactorError) Error() string {
	return fmt.Sprintf("invalid quantization factor %d: must be between 1 and 255", e.Factor)
}

// OutputError reports a failure to encode or write the result.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write image %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
