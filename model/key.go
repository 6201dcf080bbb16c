package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	KindProfile    = "Profile"
	KindConference = "Conference"
	KindSession    = "Session"
)

var ErrInvalidKey = errors.New("invalid key")

// parentKind lists, for every known kind, the kind its parent must have.
// Root kinds map to the empty string.
var parentKind = map[string]string{
	KindProfile:    "",
	KindConference: KindProfile,
	KindSession:    KindConference,
}

// Key identifies an entity through its ancestor path, e.g.
// Profile#u1/Conference#c1/Session#s1.
type Key struct {
	Kind   string
	Id     string
	Parent *Key
}

func NewProfileKey(userId string) *Key {
	return &Key{Kind: KindProfile, Id: userId}
}

func NewConferenceKey(userId, conferenceId string) *Key {
	return &Key{Kind: KindConference, Id: conferenceId, Parent: NewProfileKey(userId)}
}

func NewSessionKey(userId, conferenceId, sessionId string) *Key {
	return &Key{Kind: KindSession, Id: sessionId, Parent: NewConferenceKey(userId, conferenceId)}
}

// String renders the ancestor path.
func (k *Key) String() string {
	if k.Parent == nil {
		return k.Kind + "#" + k.Id
	}
	return k.Parent.String() + "/" + k.Kind + "#" + k.Id
}

// Encode returns the URL-safe token handed out to clients.
func (k *Key) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(k.String()))
}

// DecodeKey parses a token produced by Encode.
func DecodeKey(websafe string) (*Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(websafe, "="))
	if err != nil || len(raw) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, websafe)
	}

	var key *Key
	for _, segment := range strings.Split(string(raw), "/") {
		kind, id, found := strings.Cut(segment, "#")
		if !found || id == "" {
			return nil, fmt.Errorf("%w: malformed segment %q", ErrInvalidKey, segment)
		}
		expectedParent, known := parentKind[kind]
		if !known {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidKey, kind)
		}
		gotParent := ""
		if key != nil {
			gotParent = key.Kind
		}
		if gotParent != expectedParent {
			return nil, fmt.Errorf("%w: %s cannot be a child of %q", ErrInvalidKey, kind, gotParent)
		}
		key = &Key{Kind: kind, Id: id, Parent: key}
	}
	return key, nil
}

// Ancestor walks up the path and returns the first key of the given kind.
func (k *Key) Ancestor(kind string) *Key {
	for cur := k; cur != nil; cur = cur.Parent {
		if cur.Kind == kind {
			return cur
		}
	}
	return nil
}
