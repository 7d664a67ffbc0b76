package resolver

import "testing"

func TestAliasAppliesToWithNoContextIsGlobal(t *testing.T) {
	a := Alias{Pattern: CompilePattern("#features/*"), Paths: []string{"./src/features/*"}}
	if !a.AppliesTo("/repo/src/anything/whatever.ts") {
		t.Fatalf("an alias with no Context must apply to every importer")
	}
}

func TestAliasAppliesToRestrictsByContextPrefix(t *testing.T) {
	a := Alias{
		Pattern: CompilePattern("#features/*"),
		Paths:   []string{"./src/features/*"},
		Context: []string{"/repo/src/features"},
	}

	if !a.AppliesTo("/repo/src/features/some/index.ts") {
		t.Fatalf("expected the alias to apply to an importer under its Context prefix")
	}
	if !a.AppliesTo("/repo/src/features") {
		t.Fatalf("expected the alias to apply to an importer equal to its Context prefix")
	}
	if a.AppliesTo("/repo/src/other/index.ts") {
		t.Fatalf("expected the alias not to apply to an importer outside its Context prefix")
	}
}

func TestAliasAppliesToContextPrefixIsNotASubstringMatch(t *testing.T) {
	a := Alias{
		Pattern: CompilePattern("#features/*"),
		Paths:   []string{"./src/features/*"},
		Context: []string{"/repo/src/features"},
	}

	// "/repo/src/features-legacy" shares the literal prefix "/repo/src/features"
	// but is not inside it as a directory.
	if a.AppliesTo("/repo/src/features-legacy/index.ts") {
		t.Fatalf("expected a sibling directory sharing a string prefix not to match")
	}
}

func TestAliasAppliesToAnyMatchingContextEntryIsEnough(t *testing.T) {
	a := Alias{
		Pattern: CompilePattern("#shared/*"),
		Paths:   []string{"./src/shared/*"},
		Context: []string{"/repo/src/features", "/repo/src/pages"},
	}

	if !a.AppliesTo("/repo/src/pages/home/index.ts") {
		t.Fatalf("expected the second Context entry to be checked too")
	}
	if a.AppliesTo("/repo/src/other/index.ts") {
		t.Fatalf("expected no match when the importer is under neither Context entry")
	}
}
