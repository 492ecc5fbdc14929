// Package naming expands object name patterns.
//
// Recognized placeholders:
//
//	${date}          target date, YYYYMMDD
//	${time}          current time, HHMMSS
//	${microseconds}  current microseconds, 6 digits
//	${timestamp}     target date + current HHMMSS + microseconds
//	${number}        1-based file number within the day
//	${uuid}          random UUID v4
//
// Anything else, including unknown ${...} tokens, is copied verbatim. A
// placeholder nested inside an unknown token is still expanded.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout = "20060102"
	timeLayout = "150405"
)

// Resolver expands patterns. The zero value is not usable; use NewResolver.
type Resolver struct {
	now     func() time.Time
	newUUID func() string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithUUIDFunc replaces the UUID factory.
func WithUUIDFunc(fn func() string) Option {
	return func(r *Resolver) { r.newUUID = fn }
}

// NewResolver returns a Resolver using the wall clock and random UUIDs.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		now:     time.Now,
		newUUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands pattern for the number-th file of date. The clock is read
// once per call; every ${uuid} occurrence gets its own UUID.
func (r *Resolver) Resolve(pattern string, date time.Time, number int) string {
	if !strings.Contains(pattern, "${") {
		return pattern
	}

	now := r.now()
	var b strings.Builder
	b.Grow(len(pattern) + 32)

	rest := pattern
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		if value, ok := r.expand(rest[start+2:end], date, now, number); ok {
			b.WriteString(rest[:start])
			b.WriteString(value)
			rest = rest[end+1:]
			continue
		}
		// Not a placeholder: keep the "$" and rescan from the next byte.
		b.WriteString(rest[:start+1])
		rest = rest[start+1:]
	}
	return b.String()
}

func (r *Resolver) expand(name string, date, now time.Time, number int) (string, bool) {
	switch name {
	case "date":
		return date.Format(dateLayout), true
	case "time":
		return now.Format(timeLayout), true
	case "microseconds":
		return micros(now), true
	case "timestamp":
		return date.Format(dateLayout) + now.Format(timeLayout) + micros(now), true
	case "number":
		return strconv.Itoa(number), true
	case "uuid":
		return r.newUUID(), true
	default:
		return "", false
	}
}

func micros(t time.Time) string {
	return fmt.Sprintf("%06d", t.Nanosecond()/int(time.Microsecond))
}
