package utils

import "testing"

func TestServerURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"12000", "http://localhost:12000"},
		{":12000", "http://localhost:12000"},
		{"0.0.0.0:13000", "http://0.0.0.0:13000"},
		{"http://phone.local:12000/", "http://phone.local:12000"},
		{"https://example.com", "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := ServerURL(tt.addr); got != tt.want {
				t.Errorf("ServerURL(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}
