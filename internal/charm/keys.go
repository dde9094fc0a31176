// ABOUTME: Key layout for hydration records in Charm KV.
// ABOUTME: Keys are type-prefixed and scoped by the owner's email.
package charm

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	UserPrefix  = "user:"
	LogPrefix   = "log:"
	DailyPrefix = "daily:"
)

// UserKey is the key of a user profile.
func UserKey(email string) string {
	return UserPrefix + email
}

// LogKey is the key of one session log. The timestamp is zero-padded so
// lexical key order matches time order.
func LogKey(email string, ts int64) string {
	return fmt.Sprintf("%s%s:%015d", LogPrefix, email, ts)
}

// DailyKey is the key of a user's record for date.
func DailyKey(email, date string) string {
	return DailyPrefix + email + ":" + date
}

// logPrefixFor is the prefix shared by all of a user's logs.
func logPrefixFor(email string) string {
	return LogPrefix + email + ":"
}

// dailyPrefixFor is the prefix shared by all of a user's daily records.
func dailyPrefixFor(email string) string {
	return DailyPrefix + email + ":"
}

// ParseLogKey splits a log key into email and timestamp.
func ParseLogKey(key string) (string, int64, error) {
	rest, ok := strings.CutPrefix(key, LogPrefix)
	if !ok {
		return "", 0, fmt.Errorf("not a log key: %s", key)
	}
	i := strings.LastIndex(rest, ":")
	if i < 0 {
		return "", 0, fmt.Errorf("malformed log key: %s", key)
	}
	ts, err := strconv.ParseInt(rest[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed log key %s: %w", key, err)
	}
	return rest[:i], ts, nil
}
