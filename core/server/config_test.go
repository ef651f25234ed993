package server_test

import (
	"testing"

	"id-check/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_HasUpstream(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		want     bool
	}{
		{"Set", "http://backend:9000", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Upstream: tt.upstream}
			assert.Equal(t, tt.want, c.HasUpstream())
		})
	}
}
