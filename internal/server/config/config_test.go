package config

import "testing"

func TestDefault_PassesVerify(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*ServerConfig) {},
		},
		{
			name:    "empty addr",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "" },
			wantErr: true,
		},
		{
			name:    "addr without port",
			mutate:  func(c *ServerConfig) { c.Server.Addr = "localhost" },
			wantErr: true,
		},
		{
			name:    "zero read buffer",
			mutate:  func(c *ServerConfig) { c.Server.ReadBufferSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *ServerConfig) { c.Server.RateLimit = -1 },
			wantErr: true,
		},
		{
			name: "metrics enabled with bad addr",
			mutate: func(c *ServerConfig) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = "nope"
			},
			wantErr: true,
		},
		{
			name: "metrics disabled ignores addr",
			mutate: func(c *ServerConfig) {
				c.Metrics.Enabled = false
				c.Metrics.Addr = "nope"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
