package dedupe

import (
	"errors"
	"testing"
	"time"
)

func TestGroup_SeparateGroupsDoNotShareLoads(t *testing.T) {
	var first, second Group
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []byte, 1)

	go func() {
		v, _ := first.Load("default:progression", func() ([]byte, error) {
			close(started)
			<-release
			return []byte("first"), nil
		})
		done <- v
	}()
	<-started

	result := make(chan []byte, 1)
	go func() {
		v, _ := second.Load("default:progression", func() ([]byte, error) {
			return []byte("second"), nil
		})
		result <- v
	}()

	select {
	case v := <-result:
		if string(v) != "second" {
			t.Fatalf("expected the second group's own payload, got %q", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("second group waited on the first group's load")
	}
	close(release)
	if v := <-done; string(v) != "first" {
		t.Fatalf("expected the first group's payload, got %q", v)
	}
}

func TestGroup_ReturnsLoadError(t *testing.T) {
	var g Group
	boom := errors.New("boom")
	b, err := g.Load("k", func() ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) || b != nil {
		t.Fatalf("expected the load error, got %q %v", b, err)
	}
}
