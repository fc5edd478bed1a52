//go:build ruleguard

// Package gorules holds go-ruleguard checks for roamvid, run through
// golangci-lint's gocritic ruleguard integration.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// DiskmanagerFilesystemSeams keeps destructive filesystem calls in the
// diskmanager package behind the swappable function variables, so tests can
// inject failures.
func DiskmanagerFilesystemSeams(m dsl.Matcher) {
	m.Match(`os.Remove($p)`).
		Where(m.File().PkgPath.Matches(`/internal/diskmanager$`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`call osRemove($p) instead of os.Remove`).
		Suggest(`osRemove($p)`)

	m.Match(`os.ReadDir($p)`).
		Where(m.File().PkgPath.Matches(`/internal/diskmanager$`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`call osReadDir($p) instead of os.ReadDir`).
		Suggest(`osReadDir($p)`)

	m.Match(`os.RemoveAll($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/diskmanager$`)).
		Report(`never remove directory trees recursively; remove files one by one and empty directories with osRemove`)
}

// WalkDirOverWalk prefers filepath.WalkDir, which avoids an lstat per entry.
func WalkDirOverWalk(m dsl.Matcher) {
	m.Match(`filepath.Walk($root, $fn)`).
		Report(`use filepath.WalkDir($root, ...) instead of filepath.Walk`)
}

// TimeSince replaces manual duration arithmetic.
func TimeSince(m dsl.Matcher) {
	m.Match(`time.Now().Sub($t)`).
		Report(`use time.Since($t)`).
		Suggest(`time.Since($t)`)
}

// TestingContext flags background contexts in tests.
//
// See: https://pkg.go.dev/testing#T.Context
func TestingContext(m dsl.Matcher) {
	m.Match(
		`$ctx := context.Background()`,
		`$ctx = context.Background()`,
		`$fn(context.Background(), $*args)`,
	).
		Where(m.File().Name.Matches(`_test\.go$`)).
		Report("in tests, use t.Context() instead of context.Background() (Go 1.24+)")
}

// TestifyAssertions steers towards the dedicated testify helpers, which print
// better failure messages.
func TestifyAssertions(m dsl.Matcher) {
	m.Match(`$pkg.Equal($t, len($x), $n)`).
		Where(m["pkg"].Text.Matches(`^(assert|require)$`)).
		Report(`use $pkg.Len($t, $x, $n)`).
		Suggest(`$pkg.Len($t, $x, $n)`)

	m.Match(`$pkg.Nil($t, $err)`).
		Where(m["pkg"].Text.Matches(`^(assert|require)$`) && m["err"].Type.Is(`error`)).
		Report(`use $pkg.NoError($t, $err)`).
		Suggest(`$pkg.NoError($t, $err)`)

	m.Match(`$pkg.True($t, errors.Is($err, $target))`).
		Where(m["pkg"].Text.Matches(`^(assert|require)$`)).
		Report(`use $pkg.ErrorIs($t, $err, $target)`).
		Suggest(`$pkg.ErrorIs($t, $err, $target)`)
}
