package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-b", "10", "-x", "y"},
			allowed: []string{"-b"},
			want:    []string{"-b", "10"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=identity.yaml", "-m", "3"},
			allowed: []string{"--config"},
			want:    []string{"--config=identity.yaml"},
		},
		{
			name:    "several owned flags keep their order",
			args:    []string{"-m", "3", "-v", "-d", "5"},
			allowed: []string{"-d", "-m"},
			want:    []string{"-m", "3", "-d", "5"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-k", "-m", "3"},
			allowed: []string{"-k"},
			want:    []string{"-k"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-s"},
			allowed: []string{"-s"},
			want:    []string{"-s"},
		},
		{
			name:    "nothing owned",
			args:    []string{"positional", "--other=1"},
			allowed: []string{"-s"},
			want:    []string{},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-s"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/identity.yaml"}, "/etc/identity.yaml"},
		{"long", []string{"-config", "/etc/identity.json"}, "/etc/identity.json"},
		{"double dash equals", []string{"--config=./identity.yml"}, "./identity.yml"},
		{"mixed with other flags", []string{"-m", "3", "-c", "a.yaml", "-b", "4"}, "a.yaml"},
		{"last wins", []string{"-c", "1.yaml", "-config", "2.yaml"}, "2.yaml"},
		{"absent", []string{"-m", "3"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}
