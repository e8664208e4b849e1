package genericfile

import "io"

// ContentWrapper pairs the content stream of a single file with its display name and MIME type.
// The caller owns the stream and must close it.
type ContentWrapper struct {
	Reader   io.ReadCloser
	FileName string
	MimeType string
}

var _ io.ReadCloser = (*ContentWrapper)(nil)

// Read reads from the content stream.
func (c *ContentWrapper) Read(b []byte) (int, error) {
	return c.Reader.Read(b)
}

// Close closes the content stream.
func (c *ContentWrapper) Close() error {
	return c.Reader.Close()
}
