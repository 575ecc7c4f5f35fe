package procsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStat lays out a procfs-style stat file for pid with the given comm
// and processor field.
func writeStat(t *testing.T, root string, pid int32, comm string, processor string) {
	t.Helper()

	// Fields 3..40; the processor field (39) sits at index 36.
	rest := make([]string, 38)
	for i := range rest {
		rest[i] = "0"
	}
	rest[0] = "S"
	rest[36] = processor

	dir := filepath.Join(root, fmt.Sprint(pid))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	content := fmt.Sprintf("%d (%s) %s\n", pid, comm, strings.Join(rest, " "))
	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture stat: %v", err)
	}
}

func TestLastUsedCPU(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, 42, "make", "7")

	cpu, err := lastUsedCPU(root, 42)
	if err != nil {
		t.Fatalf("reading last CPU: %v", err)
	}
	if cpu != 7 {
		t.Errorf("expected core 7, got %d", cpu)
	}
}

func TestLastUsedCPU_CommWithSpacesAndParens(t *testing.T) {
	root := t.TempDir()
	// comm may contain spaces and parens; parsing must anchor on the
	// last closing paren.
	writeStat(t, root, 43, "tmux: server (1)", "3")

	cpu, err := lastUsedCPU(root, 43)
	if err != nil {
		t.Fatalf("reading last CPU: %v", err)
	}
	if cpu != 3 {
		t.Errorf("expected core 3, got %d", cpu)
	}
}

func TestLastUsedCPU_VanishedProcess(t *testing.T) {
	root := t.TempDir()

	if _, err := lastUsedCPU(root, 99999); err == nil {
		t.Error("expected error for missing stat file")
	}
}

func TestLastUsedCPU_MalformedStat(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "44")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte("44 (short) S 1 2\n"), 0o644); err != nil {
		t.Fatalf("writing fixture stat: %v", err)
	}

	if _, err := lastUsedCPU(root, 44); err == nil {
		t.Error("expected error for truncated stat file")
	}
}
