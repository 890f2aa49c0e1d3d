package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}

	runID := NewRunID()
	if runID.String() == "" {
		t.Error("Expected non-empty run ID")
	}
	activityID := NewActivityID()
	if activityID.String() == "" {
		t.Error("Expected non-empty activity ID")
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestErrorSentinels tests that wrapped errors keep their sentinel identity
func TestErrorSentinels(t *testing.T) {
	err := NewNotFoundError("run", "abc-123")
	if !IsNotFoundError(err) {
		t.Error("Expected NewNotFoundError to match ErrNotFound")
	}
	if !errors.Is(ErrRunNotFound, ErrNotFound) {
		t.Error("Expected ErrRunNotFound to wrap ErrNotFound")
	}

	unreadable := NewUnreadableError("/tmp/x.csv", errors.New("permission denied"))
	if !IsUnreadableError(unreadable) {
		t.Error("Expected NewUnreadableError to match ErrFileUnreadable")
	}
	if IsNotFoundError(unreadable) {
		t.Error("Unreadable errors must not match the not-found sentinel")
	}
}
