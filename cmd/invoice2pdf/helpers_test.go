package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// sampleContent is a minimal valid content file.
const sampleContent = `practice:
  name: Mokoena Attorneys
invoice:
  number: INV-2025-014
  invoiceDate: "2025-06-01"
  dueDate: "2025-07-01"
matter:
  title: Estate Late J. Dlamini
  client:
    name: T. Dlamini
timeEntries:
  - date: "2025-05-12"
    description: Consultation
    hours: 1.5
    rate: 1200
expenses:
  - date: "2025-05-13"
    description: Sheriff fees
    amount: 575
`

// testEnv returns an Environment with buffered output and a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates path (and its parent) with content.
func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// assertPDFFile checks that path holds a PDF.
func assertPDFFile(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s is not a PDF (starts with %q)", path, data[:min(len(data), 8)])
	}
}
