package parser

import "testing"

func TestGetVersionPrefersLinkedVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	if got := GetVersion(); got != "v9.9.9" {
		t.Errorf("GetVersion() = %q, want the linked version", got)
	}

	Version = ""
	if got := GetVersion(); got == "" {
		t.Error("GetVersion() is empty without a linked version")
	}
}
