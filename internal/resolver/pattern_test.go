package resolver

import (
	"testing"

	"github.com/barrelsplit/barrelsplit/internal/helpers"
	"github.com/barrelsplit/barrelsplit/internal/test"
)

func TestPatternWithoutWildcardsIsPlainEquality(t *testing.T) {
	p := CompilePattern("#features/some")
	test.AssertEqual(t, p.WildcardCount(), 0)

	captures, ok := p.Match("#features/some")
	if !ok || captures != nil {
		t.Fatalf("expected a no-capture match, got captures=%v ok=%v", captures, ok)
	}

	if _, ok := p.Match("#features/other"); ok {
		t.Fatalf("expected no match")
	}
}

func TestPatternSingleWildcardCapturesOneSegment(t *testing.T) {
	p := CompilePattern("#features/*")
	test.AssertEqual(t, p.WildcardCount(), 1)

	captures, ok := p.Match("#features/some")
	if !ok {
		t.Fatalf("expected a match")
	}
	if !helpers.StringArraysEqual(captures, []string{"some"}) {
		t.Fatalf("unexpected captures: %v", captures)
	}
}

func TestPatternWildcardDoesNotCrossSlash(t *testing.T) {
	p := CompilePattern("#features/*")
	if _, ok := p.Match("#features/some/nested"); ok {
		t.Fatalf("expected a wildcard to never match across a '/'")
	}
}

func TestPatternMultipleWildcardsInOrder(t *testing.T) {
	p := CompilePattern("src/*/components/*.ts")
	captures, ok := p.Match("src/some/components/Button.ts")
	if !ok {
		t.Fatalf("expected a match")
	}
	if !helpers.StringArraysEqual(captures, []string{"some", "Button"}) {
		t.Fatalf("unexpected captures: %v", captures)
	}
}

func TestPatternNoGlobstarSupport(t *testing.T) {
	// "*" is the only metacharacter recognised; "src/*/index.ts" must not
	// match a path with more than one intervening segment the way a
	// globstar would.
	p := CompilePattern("src/*/index.ts")
	if _, ok := p.Match("src/a/b/index.ts"); ok {
		t.Fatalf("a single '*' must not match across more than one path segment")
	}
	if _, ok := p.Match("src/index.ts"); ok {
		t.Fatalf("a single '*' must not match zero segments either")
	}
}

func TestSubstitutePositional(t *testing.T) {
	got := Substitute("./components/*/index.ts", []string{"Button"})
	test.AssertEqualWithDiff(t, got, "./components/Button/index.ts")
}

func TestSubstituteMultipleWildcards(t *testing.T) {
	got := Substitute("/repo/src/*/components/*", []string{"some", "Button"})
	test.AssertEqualWithDiff(t, got, "/repo/src/some/components/Button")
}
