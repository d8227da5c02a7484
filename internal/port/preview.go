package port

// TextExtractor extracts a plain-text preview from a stored file body.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
