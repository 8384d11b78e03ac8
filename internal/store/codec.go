package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	everrors "github.com/envault/envault/internal/errors"
)

// Encode serializes an env map to dotenv text for encryption. Every value
// is written double-quoted; godotenv's Marshal leaves integer-parsable
// values unquoted and renormalized, which would turn a stored "0123" into
// "123" on the next load. Lines are sorted, so encoding the same map
// always yields the same bytes and Decode(Encode(m)) round-trips exactly.
func Encode(env map[string]string) ([]byte, error) {
	lines := make([]string, 0, len(env))
	for name, value := range env {
		lines = append(lines, fmt.Sprintf("%s=%s", name, strconv.Quote(value)))
	}
	sort.Strings(lines)
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

// Decode parses dotenv text back into an env map. Returns ErrMalformedEnv
// if the payload does not parse, which after a successful decrypt means the
// file was written by something other than this store.
func Decode(data []byte) (map[string]string, error) {
	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", everrors.ErrMalformedEnv, err)
	}
	return env, nil
}
