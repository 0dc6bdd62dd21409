package logger

import "testing"

func TestNew_Development(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("failed to build development logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
}

func TestNew_Production(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("failed to build production logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Must panicked unexpectedly: %v", r)
		}
	}()
	if Must(true) == nil {
		t.Fatal("expected a logger")
	}
}
