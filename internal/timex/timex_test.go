package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"15m"`, want: 15 * time.Minute},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestDuration_TOML(t *testing.T) {
	var cfg struct {
		Interval Duration `toml:"interval"`
	}
	_, err := toml.Decode(`interval = "10s"`, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Interval.Duration)
}

func TestDuration_YAML(t *testing.T) {
	var cfg struct {
		Interval Duration `yaml:"interval"`
		Raw      Duration `yaml:"raw"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("interval: 2m\nraw: 5\n"), &cfg))
	assert.Equal(t, 2*time.Minute, cfg.Interval.Duration)
	assert.Equal(t, time.Duration(5), cfg.Raw.Duration)
}

func TestEpochSeconds_RoundTrip(t *testing.T) {
	ts := NewEpochSeconds(time.Date(2024, 4, 1, 9, 30, 15, 999, time.FixedZone("JST", 9*3600)))

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "1711931415", string(b))

	var got EpochSeconds
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, ts.Equal(got.Time))
	assert.Equal(t, time.UTC, got.Location())
}

func TestEpochSeconds_RejectsStrings(t *testing.T) {
	var got EpochSeconds
	assert.Error(t, json.Unmarshal([]byte(`"2024-04-01T00:00:00Z"`), &got))
}
