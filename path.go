package genericfile

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Jumpaku/go-genericfile/errors"
)

const (
	// RootToken is the root segment of slash-rooted paths such as "/public/reports".
	RootToken = "/"

	schemeSeparator = "://"
)

// Path represents an absolute path in the file space of some provider.
// The first segment is the root token, either "/" or a scheme such as "pvfs://", followed by
// the path segments (e.g., "/public/reports" has the segments "/", "public" and "reports").
// Relative path components like "." and ".." are not allowed.
//
// Path values are immutable. The zero Path is not a valid path and has no segments.
type Path struct {
	segments []string
}

// ParsePath parses text into a Path. Repeated and trailing slashes are ignored.
// It fails with ErrInvalidPath if text is empty, relative, or contains a disallowed segment.
func ParsePath(text string) (path Path, err error) {
	root, rest, err := splitRoot(text)
	if err != nil {
		return Path{}, err
	}
	segments := []string{root}
	for _, s := range strings.Split(rest, "/") {
		if s == "" {
			continue
		}
		if err := validateSegment(s); err != nil {
			return Path{}, err
		}
		segments = append(segments, s)
	}
	return Path{segments: segments}, nil
}

// MustParsePath is like ParsePath but panics if text cannot be parsed.
func MustParsePath(text string) Path {
	p, err := ParsePath(text)
	if err != nil {
		panic(err)
	}
	return p
}

// RootPath returns the root path for a root token such as "/" or "pvfs://".
func RootPath(token string) (path Path, err error) {
	root, rest, err := splitRoot(token)
	if err != nil {
		return Path{}, err
	}
	if rest != "" {
		return Path{}, errors.NewInvalidPathError(fmt.Sprintf("not a root token: %q", token), nil)
	}
	return Path{segments: []string{root}}, nil
}

func splitRoot(text string) (root, rest string, err error) {
	if text == "" {
		return "", "", errors.NewInvalidPathError("empty path", nil)
	}
	if strings.HasPrefix(text, RootToken) {
		return RootToken, text[len(RootToken):], nil
	}
	i := strings.Index(text, schemeSeparator)
	if i <= 0 {
		return "", "", errors.NewInvalidPathError(fmt.Sprintf("path must be absolute: %q", text), nil)
	}
	scheme := text[:i]
	for j, r := range scheme {
		ok := r < unicode.MaxASCII && (unicode.IsLetter(r) || (j > 0 && (unicode.IsDigit(r) || r == '+' || r == '-' || r == '.')))
		if !ok {
			return "", "", errors.NewInvalidPathError(fmt.Sprintf("invalid scheme: %q", scheme), nil)
		}
	}
	return scheme + schemeSeparator, text[i+len(schemeSeparator):], nil
}

func validateSegment(s string) error {
	if s == "." || s == ".." {
		return errors.NewInvalidPathError("relative path components are not allowed", nil)
	}
	if !utf8.ValidString(s) {
		return errors.NewInvalidPathError(fmt.Sprintf("invalid UTF-8 in segment %q", s), nil)
	}
	for _, r := range s {
		if r == '\\' || r == '/' || unicode.IsControl(r) {
			return errors.NewInvalidPathError(fmt.Sprintf("invalid character in segment %q", s), nil)
		}
	}
	return nil
}

// String returns the canonical form of the path, which ParsePath accepts.
func (p Path) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0] + strings.Join(p.segments[1:], "/")
}

// FirstSegment returns the root token of the path, or "" for the zero Path.
func (p Path) FirstSegment() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}

// Segments returns a copy of the path segments including the root token.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Name returns the last segment of the path. For a root path this is the root token.
func (p Path) Name() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// IsRoot reports whether the path has no segments beyond its root token.
func (p Path) IsRoot() bool {
	return len(p.segments) == 1
}

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// Parent returns the path one level up. ok is false for root paths and the zero Path.
func (p Path) Parent() (parent Path, ok bool) {
	if len(p.segments) <= 1 {
		return Path{}, false
	}
	return Path{segments: slices.Clone(p.segments[:len(p.segments)-1])}, true
}

// Child returns the path of the entry called name inside p.
func (p Path) Child(name string) (child Path, err error) {
	if p.IsZero() {
		return Path{}, errors.NewInvalidPathError("zero path has no children", nil)
	}
	if name == "" {
		return Path{}, errors.NewInvalidPathError("empty segment", nil)
	}
	if err := validateSegment(name); err != nil {
		return Path{}, err
	}
	return Path{segments: append(slices.Clone(p.segments), name)}, nil
}

// Equal reports whether p and other have the same segments.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
