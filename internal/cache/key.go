package cache

// MaxKeyLen is the longest accepted key.
const MaxKeyLen = 64

// ValidateKey checks key against [A-Za-z0-9_.]{1,64}.
func ValidateKey(key string) error {
	return validateKey("validate", key)
}

func validateKey(op, key string) error {
	if key == "" {
		return invalid(op, "key", "empty")
	}
	if len(key) > MaxKeyLen {
		return invalid(op, "key", "%d bytes, max %d", len(key), MaxKeyLen)
	}
	for i := 0; i < len(key); i++ {
		if !keyChar(key[i]) {
			return invalid(op, "key", "illegal character %q at offset %d", key[i], i)
		}
	}
	return nil
}

func keyChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '.':
		return true
	}
	return false
}

// keyOf validates a bulk element that may not be a string.
func keyOf(op string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(op, "key", "want string, got %T", v)
	}
	return s, validateKey(op, s)
}
