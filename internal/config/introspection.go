package config

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeysByType("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeysByType recursively adds keys by examining the struct type
func addKnownKeysByType(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		// viper lowercases all keys
		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}
		known[key] = true

		switch field.Type.Kind() {
		case reflect.Struct:
			if field.Type != reflect.TypeOf(time.Duration(0)) {
				addKnownKeysByType(key, field.Type, known)
			}
		case reflect.Map:
			// For maps of structs, add their fields under a wildcard
			if field.Type.Elem().Kind() == reflect.Struct {
				addKnownKeysByType(key+".*", field.Type.Elem(), known)
			} else {
				known[key+".*"] = true
			}
		}
	}
}

// matchesWildcard checks if a key matches a wildcard pattern
func matchesWildcard(pattern, key string) bool {
	patternParts := strings.Split(strings.ToLower(pattern), ".")
	keyParts := strings.Split(strings.ToLower(key), ".")

	if len(patternParts) != len(keyParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}

// IsKnownKey checks if a key is known, including wildcard matches
func IsKnownKey(known map[string]bool, key string) bool {
	if known[strings.ToLower(key)] {
		return true
	}

	for pattern := range known {
		if strings.Contains(pattern, "*") && matchesWildcard(pattern, key) {
			return true
		}
	}
	return false
}

// PrintConfig writes the configuration in YAML-like form, optionally with
// the file or variable each value came from
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool) {
	s.printValue(w, reflect.ValueOf(*s), "", "", includeSources, 0)
}

func (s *ConfigSchema) printValue(w io.Writer, v reflect.Value, key, path string, includeSources bool, indent int) {
	pad := strings.Repeat("  ", indent)

	if d, ok := v.Interface().(time.Duration); ok {
		fmt.Fprintf(w, "%s%s: %s", pad, key, d)
		s.printSourceInfo(w, path, includeSources)
		fmt.Fprintln(w)
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		if key != "" {
			fmt.Fprintf(w, "%s%s:\n", pad, key)
			indent++
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("mapstructure")
			if !field.IsExported() || tag == "" {
				continue
			}
			fieldValue := v.Field(i)
			if fieldValue.IsZero() {
				continue
			}
			childPath := strings.ToLower(tag)
			if path != "" {
				childPath = path + "." + childPath
			}
			if isSecretKey(tag) {
				fmt.Fprintf(w, "%s%s: [REDACTED]\n", strings.Repeat("  ", indent), tag)
				continue
			}
			s.printValue(w, fieldValue, tag, childPath, includeSources, indent)
		}

	case reflect.Map:
		fmt.Fprintf(w, "%s%s:\n", pad, key)
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.printValue(w, v.MapIndex(reflect.ValueOf(k)), k, path+"."+strings.ToLower(k), includeSources, indent+1)
		}

	default:
		fmt.Fprintf(w, "%s%s: %v", pad, key, v.Interface())
		s.printSourceInfo(w, path, includeSources)
		fmt.Fprintln(w)
	}
}

func (s *ConfigSchema) printSourceInfo(w io.Writer, path string, includeSources bool) {
	if !includeSources {
		return
	}
	if sources, ok := s.sources[path]; ok && len(sources) > 0 {
		fmt.Fprintf(w, " # (%s)", sources[len(sources)-1].source)
		return
	}
	fmt.Fprint(w, " # (default)")
}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "apikey") ||
		strings.HasSuffix(k, "_key") ||
		strings.Contains(k, "secret") ||
		strings.Contains(k, "password") ||
		strings.Contains(k, "token")
}
