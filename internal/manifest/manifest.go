// Package manifest decodes the launcher version manifest polled by snapwatch.
//
// The manifest schema is fixed. Every field listed on [Manifest], [Latest]
// and [Version] is required: a missing key or an explicit null fails the
// decode instead of producing a zero value. Unknown fields are ignored.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Manifest is the top-level document returned by the manifest endpoint.
type Manifest struct {
	// Latest names the newest release and snapshot. Not used for matching.
	Latest Latest

	// Versions lists every known version in server order. The order is not
	// guaranteed to be sorted.
	Versions []Version
}

// Latest holds the newest release and snapshot identifiers.
type Latest struct {
	Release  string
	Snapshot string
}

// Version is a single entry of the manifest's versions list.
type Version struct {
	ID          string
	Type        string
	URL         string
	Time        string
	ReleaseTime string
}

// object is a decoded JSON object. Keys are looked up by exact name, unlike
// struct decoding in encoding/json which folds case.
type object map[string]json.RawMessage

// Decode parses a manifest document and validates that all required fields
// are present.
//
// Keys must match exactly: "ID" does not satisfy "id". Errors name the
// offending location, e.g.
// `versions[3]: missing required field "releaseTime"`.
func Decode(data []byte) (*Manifest, error) {
	var top object
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	latest, err := requiredObject(top, "", "latest")
	if err != nil {
		return nil, err
	}
	release, err := requiredString(latest, "latest", "release")
	if err != nil {
		return nil, err
	}
	snapshot, err := requiredString(latest, "latest", "snapshot")
	if err != nil {
		return nil, err
	}

	rawVersions, ok := present(top, "versions")
	if !ok {
		return nil, missingField("", "versions")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rawVersions, &entries); err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}

	versions := make([]Version, 0, len(entries))
	for i, raw := range entries {
		where := fmt.Sprintf("versions[%d]", i)
		if isNull(raw) {
			return nil, fmt.Errorf("%s: entry is null", where)
		}
		var entry object
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		v, err := toVersion(entry, where)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return &Manifest{
		Latest:   Latest{Release: release, Snapshot: snapshot},
		Versions: versions,
	}, nil
}

func toVersion(entry object, where string) (Version, error) {
	var (
		v   Version
		err error
	)
	if v.ID, err = requiredString(entry, where, "id"); err != nil {
		return Version{}, err
	}
	if v.Type, err = requiredString(entry, where, "type"); err != nil {
		return Version{}, err
	}
	if v.URL, err = requiredString(entry, where, "url"); err != nil {
		return Version{}, err
	}
	if v.Time, err = requiredString(entry, where, "time"); err != nil {
		return Version{}, err
	}
	if v.ReleaseTime, err = requiredString(entry, where, "releaseTime"); err != nil {
		return Version{}, err
	}
	return v, nil
}

// ErrMissingField is wrapped by every error Decode reports for an absent or
// null required field.
var ErrMissingField = errors.New("missing required field")

// present returns the raw value of key, treating an explicit null as absent.
func present(o object, key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func requiredObject(o object, where, field string) (object, error) {
	raw, ok := present(o, field)
	if !ok {
		return nil, missingField(where, field)
	}
	var nested object
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("%s: %w", join(where, field), err)
	}
	return nested, nil
}

func requiredString(o object, where, field string) (string, error) {
	raw, ok := present(o, field)
	if !ok {
		return "", missingField(where, field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s: %w", join(where, field), err)
	}
	return s, nil
}

func join(where, field string) string {
	if where == "" {
		return field
	}
	return where + "." + field
}

func missingField(where, field string) error {
	if where == "" {
		return fmt.Errorf("%w %q", ErrMissingField, field)
	}
	return fmt.Errorf("%s: %w %q", where, ErrMissingField, field)
}

// Find returns the first version whose ID equals id exactly.
//
// Matching is case-sensitive and performs no trimming. When the manifest
// contains duplicate IDs the earliest entry in document order wins.
func (m *Manifest) Find(id string) (Version, bool) {
	if m == nil {
		return Version{}, false
	}
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}
