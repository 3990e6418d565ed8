// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesCoversEveryId(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(ReservedFileNameId) {
		t.Fatalf("Values() has %d issues, want %d", len(values), ReservedFileNameId)
	}
	for i, is := range values {
		if want := Id(i + 1); is.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), want)
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", is.Id())
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	is := Get(CompilerTooNewId)
	if is == nil {
		t.Fatal("Get(CompilerTooNewId) returned nil")
	}
	if !strings.Contains(string(is.MarkdownMsg()), "MSVC version not recognized") {
		t.Errorf("unexpected message: %s", is.MarkdownMsg())
	}
	if Get(Id(999)) != nil {
		t.Error("Get(unknown) should return nil")
	}
}

func TestLinksAreCopies(t *testing.T) {
	t.Parallel()

	is := &Issue{id: 1, docLinks: []HttpLink{"https://example.com/a"}}
	links := is.DocLinks()
	links[0] = "changed"
	if is.DocLinks()[0] != "https://example.com/a" {
		t.Error("DocLinks() must return a copy")
	}
	if len(is.ExtLinks()) != 0 {
		t.Error("ExtLinks() should be empty")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Get(UnsupportedArchId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Unsupported architecture") {
		t.Errorf("Render() output missing title:\n%s", out)
	}
}
