package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		ping error
		want string
	}{
		{"model up", nil, "up"},
		{"model down", errors.New("connection refused"), "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(fakePinger{err: tt.ping})
			got := svc.Status(context.Background())
			if got["ok"] != true {
				t.Error("ok = false")
			}
			if got["model_server"] != tt.want {
				t.Errorf("model_server = %v, want %s", got["model_server"], tt.want)
			}
		})
	}
}

func TestStatusWithoutPinger(t *testing.T) {
	got := NewService(nil).Status(context.Background())
	if got["ok"] != true {
		t.Error("ok = false")
	}
	if _, present := got["model_server"]; present {
		t.Error("model_server reported with no pinger configured")
	}
}
