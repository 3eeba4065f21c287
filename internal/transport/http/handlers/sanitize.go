package handlers

import "encoding/json"

// secretKeys lists the JSON keys stripped from outbound payloads at any
// nesting depth.
var secretKeys = map[string]struct{}{
	"password":     {},
	"passwordHash": {},
}

// Sanitize strips credential material from an arbitrary payload before it
// leaves a handler. The value is normalized through its JSON representation,
// then every secret key is removed recursively from objects and arrays. The
// operation is idempotent: sanitizing an already sanitized payload is a
// no-op.
func Sanitize(v any) any {
	if v == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		// Unmarshalable payloads pass through untouched; gin will surface
		// the same failure when rendering.
		return v
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return v
	}

	return stripSecrets(decoded)
}

func stripSecrets(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, nested := range value {
			if _, secret := secretKeys[key]; secret {
				delete(value, key)
				continue
			}
			value[key] = stripSecrets(nested)
		}
		return value
	case []any:
		for i, item := range value {
			value[i] = stripSecrets(item)
		}
		return value
	default:
		return value
	}
}
