package domain

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func makeTrack(url string) Track {
	return NewTrack(url, snowflake.ID(100))
}

func TestTrackQueue_PushReturnsPosition(t *testing.T) {
	q := NewTrackQueue()

	if pos := q.Push(makeTrack("https://example.com/a")); pos != 0 {
		t.Errorf("expected position 0, got %d", pos)
	}
	if pos := q.Push(makeTrack("https://example.com/b")); pos != 1 {
		t.Errorf("expected position 1, got %d", pos)
	}
	if pos := q.Push(makeTrack("https://example.com/c")); pos != 2 {
		t.Errorf("expected position 2, got %d", pos)
	}
}

func TestTrackQueue_FIFOOrder(t *testing.T) {
	q := NewTrackQueue()
	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}
	for _, url := range urls {
		q.Push(makeTrack(url))
	}

	for _, want := range urls {
		head := q.PopHead()
		if head == nil {
			t.Fatalf("expected track %q, got nil", want)
		}
		if head.URL != want {
			t.Errorf("expected %q, got %q", want, head.URL)
		}
	}

	if !q.IsEmpty() {
		t.Error("expected queue to be empty after popping all tracks")
	}
}

func TestTrackQueue_HeadDoesNotRemove(t *testing.T) {
	q := NewTrackQueue()
	q.Push(makeTrack("https://example.com/a"))

	if head := q.Head(); head == nil || head.URL != "https://example.com/a" {
		t.Fatalf("unexpected head: %v", head)
	}
	if q.Len() != 1 {
		t.Errorf("expected length 1 after Head, got %d", q.Len())
	}
}

func TestTrackQueue_EmptyAccessors(t *testing.T) {
	q := NewTrackQueue()

	if head := q.Head(); head != nil {
		t.Errorf("expected nil head on empty queue, got %v", head)
	}
	if head := q.PopHead(); head != nil {
		t.Errorf("expected nil pop on empty queue, got %v", head)
	}
	if !q.IsEmpty() {
		t.Error("expected empty queue")
	}
}

func TestTrackQueue_Clear(t *testing.T) {
	q := NewTrackQueue()
	q.Push(makeTrack("https://example.com/a"))
	q.Push(makeTrack("https://example.com/b"))

	if n := q.Clear(); n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
	if !q.IsEmpty() {
		t.Error("expected queue to be empty after Clear")
	}
	if n := q.Clear(); n != 0 {
		t.Errorf("expected 0 cleared on empty queue, got %d", n)
	}
}

func TestTrackQueue_ListReturnsCopy(t *testing.T) {
	q := NewTrackQueue()
	q.Push(makeTrack("https://example.com/a"))
	q.Push(makeTrack("https://example.com/b"))

	list := q.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(list))
	}

	list[0].URL = "mutated"
	if q.Head().URL != "https://example.com/a" {
		t.Error("mutating the listed slice must not affect the queue")
	}
}
