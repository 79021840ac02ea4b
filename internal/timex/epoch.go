package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// EpochSeconds is a UTC timestamp encoded in JSON as integer seconds since
// the Unix epoch. Sub-second precision is dropped.
type EpochSeconds struct {
	time.Time
}

// NewEpochSeconds truncates t to whole seconds in UTC.
func NewEpochSeconds(t time.Time) EpochSeconds {
	return EpochSeconds{Time: time.Unix(t.Unix(), 0).UTC()}
}

func (e EpochSeconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Unix())
}

func (e *EpochSeconds) UnmarshalJSON(b []byte) error {
	var secs int64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("createdAt must be epoch seconds: %w", err)
	}
	e.Time = time.Unix(secs, 0).UTC()
	return nil
}
