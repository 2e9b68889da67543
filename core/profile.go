package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProjectProfile extracts the minimal personal info from the provider's
// raw profile document. It is a pure function: any absent path or
// unparseable id yields ErrMalformedProfile wrapping the dotted path.
func ProjectProfile(doc map[string]any) (*MinimalProfile, error) {
	common, err := subdoc(doc, "profile", "common_data")
	if err != nil {
		return nil, err
	}
	registration, err := subdoc(doc, "profile", "address", "permanent_registration")
	if err != nil {
		return nil, err
	}

	p := &MinimalProfile{}

	fields := []struct {
		doc  map[string]any
		path string
		dst  *string
	}{
		{common, "profile.common_data.pinfl", &p.PINFL},
		{common, "profile.common_data.first_name", &p.FirstName},
		{common, "profile.common_data.last_name", &p.LastName},
		{common, "profile.common_data.middle_name", &p.MiddleName},
		{common, "profile.common_data.birth_date", &p.BirthDate},
		{registration, "profile.address.permanent_registration.region", &p.Region},
		{registration, "profile.address.permanent_registration.district", &p.District},
	}
	for _, f := range fields {
		v, err := stringField(f.doc, f.path)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if p.RegionID, err = intField(registration, "profile.address.permanent_registration.region_id"); err != nil {
		return nil, err
	}
	if p.DistrictID, err = intField(registration, "profile.address.permanent_registration.district_id"); err != nil {
		return nil, err
	}

	return p, nil
}

// subdoc descends through nested objects from the document root.
func subdoc(doc map[string]any, path ...string) (map[string]any, error) {
	current := doc
	for i, key := range path {
		v, ok := current[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedProfile, strings.Join(path[:i+1], "."))
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an object", ErrMalformedProfile, strings.Join(path[:i+1], "."))
		}
		current = next
	}
	return current, nil
}

func stringField(doc map[string]any, path string) (string, error) {
	key := path[strings.LastIndex(path, ".")+1:]
	v, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedProfile, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedProfile, path)
	}
	return s, nil
}

// intField accepts JSON numbers and numeric strings; the provider is
// not consistent about which one it sends for region/district ids.
func intField(doc map[string]any, path string) (int, error) {
	key := path[strings.LastIndex(path, ".")+1:]
	v, ok := doc[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedProfile, path)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedProfile, path)
		}
		return i, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedProfile, path)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedProfile, path)
	}
}
