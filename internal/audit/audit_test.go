package audit

import (
	"os"
	"testing"
)

func TestLogAndReadEntries(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	Log(tmpDir, Entry{Operation: "provision", Force: true, Generated: 2, Complete: true})
	Log(tmpDir, Entry{Operation: "provision", Skipped: 2, Complete: true})

	entries, err := ReadEntries(tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}
	if entries[0].Operation != "provision" || !entries[0].Force || entries[0].Generated != 2 {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[0].Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if entries[1].Skipped != 2 {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
}

func TestReadEntries_NoLog(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	entries, err := ReadEntries(tmpDir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil, got: %v", entries)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"op":"provision","complete":true}
not json at all
{"op":"verify","complete":false,"incomplete":["auth/src/main/resources/keys"]}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}
	if entries[1].Operation != "verify" || len(entries[1].Incomplete) != 1 {
		t.Errorf("Unexpected entry: %+v", entries[1])
	}
}

func TestLog_EmptyRootIsNoop(t *testing.T) {
	// Must not panic or create files anywhere.
	Log("", Entry{Operation: "provision"})
}
