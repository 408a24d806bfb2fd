package server

import (
	"testing"
	"time"

	"github.com/biztro/biztro/internal/config"
)

func TestNew_AppliesConfiguredTimeouts(t *testing.T) {
	srv := New(config.HTTP{
		ListenAddr:      ":9090",
		ReadTimeoutSec:  3,
		WriteTimeoutSec: 7,
		IdleTimeoutSec:  30,
	}, nil)

	if srv.Addr != ":9090" {
		t.Fatalf("Addr = %q", srv.Addr)
	}
	if srv.ReadTimeout != 3*time.Second {
		t.Fatalf("ReadTimeout = %v", srv.ReadTimeout)
	}
	if srv.WriteTimeout != 7*time.Second {
		t.Fatalf("WriteTimeout = %v", srv.WriteTimeout)
	}
	if srv.IdleTimeout != 30*time.Second {
		t.Fatalf("IdleTimeout = %v", srv.IdleTimeout)
	}
}

func TestNew_ZeroValuesFallBackToDefaults(t *testing.T) {
	srv := New(config.HTTP{ListenAddr: ":8080"}, nil)

	if srv.ReadTimeout != DefaultReadTimeout {
		t.Fatalf("ReadTimeout = %v, want %v", srv.ReadTimeout, DefaultReadTimeout)
	}
	if srv.WriteTimeout != DefaultWriteTimeout {
		t.Fatalf("WriteTimeout = %v, want %v", srv.WriteTimeout, DefaultWriteTimeout)
	}
	if srv.IdleTimeout != DefaultIdleTimeout {
		t.Fatalf("IdleTimeout = %v, want %v", srv.IdleTimeout, DefaultIdleTimeout)
	}
}
