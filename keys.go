package recoal

import "encoding/json"

// KeyGenerator derives a cache key from an operation name and its raw
// argument list. Implementations must be deterministic: structurally equal
// arguments must always produce the same key.
type KeyGenerator func(name string, args []any) (string, error)

const keySeparator = "::"

// defaultKeyGenerator serializes the argument list as JSON and appends it to
// the operation name. encoding/json emits map keys in sorted order, so maps
// with the same key-value pairs collide to the same cache key regardless of
// how they were built. Arguments are distinguished by position and value.
// Unsupported values (channels, functions, cyclic structures) fail.
func defaultKeyGenerator(name string, args []any) (string, error) {
	if len(args) == 0 {
		return name, nil
	}

	serialized, err := json.Marshal(args)
	if err != nil {
		return "", err
	}

	return name + keySeparator + string(serialized), nil
}
