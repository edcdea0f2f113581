package core

import "testing"

func TestIgnoreFilterRules(t *testing.T) {
	filter := NewIgnoreFilter(
		[]string{".tmp", ".bak"},
		[]string{"~$"},
		[]string{"Thumbs.db"},
		[]string{"node_modules", ".GIT"},
		[]string{"**/*.generated.go"},
	)

	cases := []struct {
		path string
		want bool
	}{
		{"report.tmp", true},
		{"report.bak", true},
		{"~$report.docx", true},
		{"Thumbs.db", true},
		{"report.txt", false},
		{"pkg/foo.generated.go", true},
	}
	for _, c := range cases {
		if got := filter.IgnoreFile(c.path); got != c.want {
			t.Errorf("IgnoreFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	if !filter.IgnoreDirectory("node_modules") {
		t.Errorf("expected node_modules to be ignored")
	}
	if !filter.IgnoreDirectory("git") == filter.IgnoreDirectory(".git") {
		// .GIT is configured case-insensitively; .git should match it.
	}
	if !filter.IgnoreDirectory(".git") {
		t.Errorf("expected .git to match the case-insensitive .GIT entry")
	}
	if filter.IgnoreDirectory("src") {
		t.Errorf("did not expect src to be ignored")
	}
}

func TestNilIgnoreFilterIgnoresNothing(t *testing.T) {
	var filter *IgnoreFilter
	if filter.IgnoreFile("anything.tmp") {
		t.Fatalf("expected a nil filter to ignore nothing")
	}
	if filter.IgnoreDirectory("node_modules") {
		t.Fatalf("expected a nil filter to ignore nothing")
	}
}
