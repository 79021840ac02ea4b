package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-b", "-d"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate values", []string{"-a", ":3000", "-b", "postgres"}, serverFlags, []string{"-a", ":3000", "-b", "postgres"}},
		{"equals form", []string{"-d=postgres://db/classes", "-x", "1"}, serverFlags, []string{"-d=postgres://db/classes"}},
		{"unknown flags dropped", []string{"-x", "1", "--y=2", "positional"}, serverFlags, []string{}},
		{"dangling flag kept", []string{"-b"}, serverFlags, []string{"-b"}},
		{"next flag is not a value", []string{"-b", "-a", ":8080"}, serverFlags, []string{"-b", "-a", ":8080"}},
		{"equals value may start with dash", []string{"--config=--odd.json"}, []string{"--config"}, []string{"--config=--odd.json"}},
		{"repeated flag preserved in order", []string{"-c", "one.toml", "-c", "two.toml"}, []string{"-c"}, []string{"-c", "one.toml", "-c", "two.toml"}},
		{"empty", []string{}, serverFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"testbin", "-c", "/etc/classkeeper/short.toml"}, "/etc/classkeeper/short.toml"},
		{"long", []string{"testbin", "-config", "/etc/classkeeper/long.yaml"}, "/etc/classkeeper/long.yaml"},
		{"mixed with server flags", []string{"testbin", "-a", ":3000", "-c", "cfg.json", "-b", "memory"}, "cfg.json"},
		{"absent", []string{"testbin", "-x", "1"}, ""},
		{"last wins", []string{"testbin", "-c", "1.json", "-config", "2.json"}, "2.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigFileFlag())
		})
	}
}
