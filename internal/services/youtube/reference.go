package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// RefKind says how a channel reference must be looked up
type RefKind int

const (
	RefID RefKind = iota
	RefHandle
	RefUsername
)

// ChannelRef is a parsed channel reference
type ChannelRef struct {
	Kind  RefKind
	Value string
}

// String returns a stable form of the reference, used as a cache key
func (r ChannelRef) String() string {
	switch r.Kind {
	case RefHandle:
		return "handle:" + strings.ToLower(r.Value)
	case RefUsername:
		return "user:" + strings.ToLower(r.Value)
	default:
		return "id:" + r.Value
	}
}

// ParseChannelRef accepts a channel id, an @handle, or a channel URL in the
// /channel/<id>, /@handle, /c/<name> or /user/<name> forms.
func ParseChannelRef(ref string) (ChannelRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ChannelRef{}, ErrInvalidReference
	}

	if looksLikeURL(ref) {
		return parseChannelURL(ref)
	}

	if strings.HasPrefix(ref, "@") {
		if len(ref) == 1 {
			return ChannelRef{}, ErrInvalidReference
		}
		return ChannelRef{Kind: RefHandle, Value: ref}, nil
	}

	if strings.ContainsAny(ref, "/ ?#") {
		return ChannelRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return ChannelRef{Kind: RefID, Value: ref}, nil
}

func looksLikeURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.Contains(lower, "youtube.com") ||
		strings.Contains(lower, "youtu.be")
}

func parseChannelURL(raw string) (ChannelRef, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ChannelRef{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ChannelRef{}, fmt.Errorf("%w: no channel in %q", ErrInvalidReference, raw)
	}

	first := segments[0]
	switch {
	case strings.HasPrefix(first, "@") && len(first) > 1:
		return ChannelRef{Kind: RefHandle, Value: first}, nil
	case len(segments) < 2:
	case first == "channel":
		return ChannelRef{Kind: RefID, Value: segments[1]}, nil
	case first == "user":
		return ChannelRef{Kind: RefUsername, Value: segments[1]}, nil
	case first == "c":
		// legacy custom URLs mostly match the handle
		return ChannelRef{Kind: RefHandle, Value: "@" + segments[1]}, nil
	}
	return ChannelRef{}, fmt.Errorf("%w: unsupported channel URL %q", ErrInvalidReference, raw)
}
