package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	maxFeatures      = 50
	maxFeatureLength = 200
	maxSpecKeyLength = 100
	maxSpecValLength = 500
)

// FeatureList is the ordered list of selling points shown for a product.
type FeatureList []string

// ParseFeatureList reads one feature per line. Blank lines are skipped.
func ParseFeatureList(text string) FeatureList {
	var out FeatureList
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Validate checks the list for blank, duplicate or oversized entries.
func (f FeatureList) Validate() error {
	if len(f) > maxFeatures {
		return fmt.Errorf("at most %d features are allowed", maxFeatures)
	}
	seen := make(map[string]struct{}, len(f))
	for i, feature := range f {
		trimmed := strings.TrimSpace(feature)
		if trimmed == "" {
			return fmt.Errorf("feature %d is blank", i+1)
		}
		if len(trimmed) > maxFeatureLength {
			return fmt.Errorf("feature %d is longer than %d characters", i+1, maxFeatureLength)
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("feature %q is listed twice", trimmed)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Encode returns the transport form: a JSON array, never null.
func (f FeatureList) Encode() (string, error) {
	if f == nil {
		f = FeatureList{}
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(b), nil
}

// DecodeFeatureList parses the transport form produced by Encode.
func DecodeFeatureList(s string) (FeatureList, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out FeatureList
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("features must be a JSON array of strings: %w", err)
	}
	return out, nil
}

// SpecMap holds technical specifications such as "Weight" -> "1.2 kg".
type SpecMap map[string]string

// ParseSpecMap reads "key: value" lines. Lines without a colon are rejected.
func ParseSpecMap(text string) (SpecMap, error) {
	out := SpecMap{}
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"key: value\"", n+1)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// Validate checks keys and values for blanks and length bounds.
func (s SpecMap) Validate() error {
	for _, key := range s.Keys() {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("specification keys must not be blank")
		}
		if len(key) > maxSpecKeyLength {
			return fmt.Errorf("specification %q: key longer than %d characters", key, maxSpecKeyLength)
		}
		if len(s[key]) > maxSpecValLength {
			return fmt.Errorf("specification %q: value longer than %d characters", key, maxSpecValLength)
		}
	}
	return nil
}

// Keys returns the keys in sorted order.
func (s SpecMap) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode returns the transport form: a JSON object, never null.
func (s SpecMap) Encode() (string, error) {
	if s == nil {
		s = SpecMap{}
	}
	b, err := json.Marshal(map[string]string(s))
	if err != nil {
		return "", fmt.Errorf("failed to encode specs: %w", err)
	}
	return string(b), nil
}

// DecodeSpecMap parses the transport form produced by Encode.
func DecodeSpecMap(str string) (SpecMap, error) {
	if strings.TrimSpace(str) == "" {
		return nil, nil
	}
	var out SpecMap
	if err := json.Unmarshal([]byte(str), &out); err != nil {
		return nil, fmt.Errorf("specs must be a JSON object of strings: %w", err)
	}
	return out, nil
}
