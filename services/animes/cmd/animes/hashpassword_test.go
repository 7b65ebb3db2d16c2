package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("root\n"))
	rootCmd.SetArgs([]string{"hash-password", "--cost", "4"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	line := strings.TrimSpace(out.String())
	if !strings.HasPrefix(line, "{bcrypt}") {
		t.Fatalf("expected {bcrypt} prefix, got %q", line)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(strings.TrimPrefix(line, "{bcrypt}")), []byte("root")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}
