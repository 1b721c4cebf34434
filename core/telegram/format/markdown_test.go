package format

import "testing"

func TestEscapeMarkdownV1(t *testing.T) {
	got, err := EscapeMarkdown("a_b*c[d`e", MarkdownV1)
	if err != nil {
		t.Fatal(err)
	}
	want := `a\_b\*c\[d\` + "`e"
	if got != want {
		t.Fatalf("EscapeMarkdown = %q, want %q", got, want)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got, err := EscapeMarkdown("hi! (v2.0)", MarkdownV2)
	if err != nil {
		t.Fatal(err)
	}
	want := `hi\! \(v2\.0\)`
	if got != want {
		t.Fatalf("EscapeMarkdown = %q, want %q", got, want)
	}
}

func TestEscapeMarkdownBadVersion(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestEscapeV1PlainTextUnchanged(t *testing.T) {
	if got := EscapeV1("plain text"); got != "plain text" {
		t.Fatalf("EscapeV1 = %q", got)
	}
}
