package cache

import (
	"errors"
	"testing"
)

var errFlaky = errors.New("flaky")

func TestCell_FailOnceThenSucceed(t *testing.T) {
	var c Cell[int]
	calls := 0
	fetch := func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errFlaky
		}
		return 42, nil
	}

	if _, err := c.Get(fetch); !errors.Is(err, errFlaky) {
		t.Fatalf("first Get error = %v, want %v", err, errFlaky)
	}
	v, err := c.Get(fetch)
	if err != nil || v != 42 {
		t.Fatalf("second Get = %d, %v; want 42, nil", v, err)
	}
	v, err = c.Get(fetch)
	if err != nil || v != 42 {
		t.Fatalf("third Get = %d, %v; want 42, nil", v, err)
	}
	if calls != 2 {
		t.Fatalf("fetch called %d times, want 2", calls)
	}
}

func TestCell_AlwaysFailingFetchRunsEveryTime(t *testing.T) {
	var c Cell[string]
	calls := 0
	fetch := func() (string, error) {
		calls++
		return "", errFlaky
	}

	for i := 0; i < 4; i++ {
		if _, err := c.Get(fetch); err == nil {
			t.Fatalf("Get #%d: expected error", i)
		}
	}
	if calls != 4 {
		t.Fatalf("fetch called %d times, want 4", calls)
	}
}

func TestCell_ChainedCellsRetryUpstream(t *testing.T) {
	var info, frame Cell[int]
	connected := false
	infoCalls := 0

	getInfo := func() (int, error) {
		return info.Get(func() (int, error) {
			infoCalls++
			if !connected {
				return 0, errFlaky
			}
			return 7, nil
		})
	}
	getFrame := func() (int, error) {
		return frame.Get(func() (int, error) {
			i, err := getInfo()
			if err != nil {
				return 0, err
			}
			return i * 10, nil
		})
	}

	if _, err := getFrame(); err == nil {
		t.Fatalf("expected error while disconnected")
	}

	connected = true
	v, err := getFrame()
	if err != nil || v != 70 {
		t.Fatalf("getFrame = %d, %v; want 70, nil", v, err)
	}
	if _, err := getFrame(); err != nil {
		t.Fatalf("cached getFrame error: %v", err)
	}
	if infoCalls != 2 {
		t.Fatalf("info fetched %d times, want 2", infoCalls)
	}
}

func TestCell_PeekAndReset(t *testing.T) {
	var c Cell[int]
	if _, ok, _ := c.Peek(); ok {
		t.Fatalf("new cell should be empty")
	}

	c.Get(func() (int, error) { return 3, nil })
	if v, ok, err := c.Peek(); !ok || err != nil || v != 3 {
		t.Fatalf("Peek = %d, %v, %v", v, err, ok)
	}

	c.Reset()
	calls := 0
	c.Get(func() (int, error) { calls++; return 4, nil })
	if calls != 1 {
		t.Fatalf("Reset should force a refetch")
	}
}
