package translate

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

var (
	errNotJSON      = errors.New("body is not valid JSON")
	errMissingField = errors.New("field missing")
)

// stringField extracts the non-empty string found by following path through
// nested objects in raw. Any other shape is an error.
func stringField(raw []byte, path ...string) (string, error) {
	if len(path) == 0 {
		return "", errors.New("empty path")
	}
	if !jx.Valid(raw) {
		return "", errNotJSON
	}

	value, found, err := lookupString(jx.DecodeBytes(raw), path)
	if err != nil {
		return "", errors.Wrap(err, "decode")
	}
	if !found || value == "" {
		return "", errors.Wrap(errMissingField, strings.Join(path, "."))
	}
	return value, nil
}

func lookupString(d *jx.Decoder, path []string) (string, bool, error) {
	if d.Next() != jx.Object {
		return "", false, nil
	}

	var (
		value string
		found bool
	)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if found || string(key) != path[0] {
			return d.Skip()
		}

		if len(path) > 1 {
			if d.Next() != jx.Object {
				return d.Skip()
			}
			v, ok, err := lookupString(d, path[1:])
			if err != nil {
				return err
			}
			value, found = v, ok
			return nil
		}

		if d.Next() != jx.String {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		value, found = v, true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}
