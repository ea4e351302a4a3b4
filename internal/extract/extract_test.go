package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	data := []byte("TransUnion Credit Report\nAccount: 1234")
	text, err := ExtractTextFromBytes(context.Background(), data, "text/plain; charset=utf-8", "report.txt")
	if err != nil {
		t.Fatalf("expected text extraction, got error: %v", err)
	}
	if !strings.Contains(text, "TransUnion Credit Report") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextFromBytes_ExtensionFallback(t *testing.T) {
	data := []byte("\x00\x01opaque text export")
	if _, err := ExtractTextFromBytes(context.Background(), data, "application/octet-stream", "export.txt"); err != nil {
		t.Fatalf("expected .txt fallback to extract, got error: %v", err)
	}
}

func TestExtractTextFromBytes_UnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error")
	}
	if !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("unexpected error: %v", err)
	}
}
