package testutil

import (
	"fmt"
	"strings"
)

// FileDiff returns a well-formed unified diff section for path that adds
// n lines. Each line is about 30 bytes.
func FileDiff(path string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	b.WriteString("index 1111111..2222222 100644\n")
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "+line %04d of the changed file\n", i)
	}
	return b.String()
}

// Diff concatenates FileDiff sections, one per path, each adding n lines.
func Diff(n int, paths ...string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(FileDiff(p, n))
	}
	return b.String()
}
