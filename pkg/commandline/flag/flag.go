package flag

import (
	"fmt"
	"strings"
	"time"

	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

type Argslice []string

func (s *Argslice) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *Argslice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Attributes is a repeatable KEY=VALUE flag collected into a map.
type Attributes map[string]string

func (a *Attributes) String() string {
	if a == nil || len(*a) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(*a))
	for k, v := range *a {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, " ")
}

func (a *Attributes) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("attribute should be KEY=VALUE: %s", v)
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return fmt.Errorf("attribute key is empty: %s", v)
	}
	if *a == nil {
		*a = Attributes{}
	}
	(*a)[k] = val
	return nil
}

type LooseRFC3339 time.Time

func (t *LooseRFC3339) String() string {
	if t == nil {
		return ""
	}
	return time.Time(*t).Format(rfctime.RFC3339DateTimeFormatZ)
}

func (t *LooseRFC3339) Set(v string) error {
	parsedTime, err := rfctime.ParseLooseRFC3339(v)
	if err != nil {
		return err
	}
	*t = LooseRFC3339(parsedTime.Time())
	return nil
}

func (t *LooseRFC3339) Time() *time.Time {
	if t == nil {
		return nil
	}
	return (*time.Time)(t)
}
