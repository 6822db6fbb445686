package history

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/validate-commit/internal/commitmsg"
)

type fakeSource struct {
	commits []Commit
	err     error
}

func (f fakeSource) Commits(context.Context) ([]Commit, error) { return f.commits, f.err }

func TestCheck(t *testing.T) {
	src := fakeSource{commits: []Commit{
		{SHA: "1111111aaaa", AuthorName: "Ada", Message: "Fix: handle empty plans\n\nReturns early."},
		{SHA: "2222222bbbb", AuthorName: "Bob", Message: "fix: lowercase type"},
		{SHA: "3333333cccc", AuthorName: "Ada", Message: "Feat: Add Things"},
		{SHA: "4444444dddd", AuthorName: "Bob", Message: "feat: again"},
	}}

	rep, err := Check(context.Background(), src, commitmsg.New(commitmsg.Options{}))
	require.NoError(t, err)

	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 3, rep.Failed)
	assert.Equal(t, map[string]int{"InvalidTypeCasing": 2, "InvalidDescriptionCasing": 1}, rep.ByKind)

	require.Len(t, rep.Results, 4)
	assert.True(t, rep.Results[0].Passed())
	assert.Equal(t, "Fix: handle empty plans", rep.Results[0].Header)
	assert.Equal(t, commitmsg.InvalidTypeCasing, rep.Results[1].Kind)

	first := rep.FirstFailure()
	require.Error(t, first)
	assert.ErrorIs(t, first, commitmsg.ErrInvalidTypeCasing)
	assert.Contains(t, first.Error(), "commit 2222222")
}

func TestCheck_AllPass(t *testing.T) {
	src := fakeSource{commits: []Commit{{SHA: "abc", Message: "Fix: x"}}}

	rep, err := Check(context.Background(), src, commitmsg.New(commitmsg.Options{}))
	require.NoError(t, err)
	assert.NoError(t, rep.FirstFailure())
	assert.Empty(t, rep.ByKind)
}

func TestCheck_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Check(context.Background(), fakeSource{err: boom}, commitmsg.New(commitmsg.Options{}))
	assert.ErrorIs(t, err, boom)
}

func TestRender(t *testing.T) {
	src := fakeSource{commits: []Commit{
		{SHA: "1111111aaaa", AuthorName: "Ada", Message: "Fix: ok"},
		{SHA: "2222222bbbb", AuthorName: "Bob", Message: "fix: bad"},
	}}
	rep, err := Check(context.Background(), src, commitmsg.New(commitmsg.Options{}))
	require.NoError(t, err)

	text := rep.Text()
	assert.Contains(t, text, "PASS 1111111 Fix: ok\n")
	assert.Contains(t, text, "FAIL 2222222 fix: bad\n")
	assert.Contains(t, text, "2 commit(s): 1 passed, 1 failed\n")

	md := rep.Markdown()
	assert.Contains(t, md, "# Commit Message Report\n")
	assert.Contains(t, md, "| InvalidTypeCasing | 1 |\n")
	assert.Contains(t, md, "| 1111111 | Ada | Fix: ok | pass |\n")
	assert.Contains(t, md, "| 2222222 | Bob | fix: bad | InvalidTypeCasing |\n")
}

func TestParseLog(t *testing.T) {
	out := "aaa\x1fAda\x1fada@example.com\x1fFix: one\n\nBody.\n\x1e\n" +
		"bbb\x1fBob\x1fbob@example.com\x1fFeat: two\n\x1e\n"

	commits := parseLog(out)
	require.Len(t, commits, 2)
	assert.Equal(t, Commit{SHA: "aaa", AuthorName: "Ada", AuthorEmail: "ada@example.com", Message: "Fix: one\n\nBody."}, commits[0])
	assert.Equal(t, "Feat: two", commits[1].Message)
	assert.Empty(t, parseLog(""))
}

func TestGitSource(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	commitFile(t, dir, "a.txt", "Feat: add a\n\nAdds the first file.")
	commitFile(t, dir, "b.txt", "fix: add b")

	src := NewGitSource(dir, "", 0)
	commits, err := src.Commits(context.Background())
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "fix: add b", commits[0].Message)
	assert.Equal(t, "Feat: add a\n\nAdds the first file.", commits[1].Message)
	assert.Equal(t, "Test User", commits[1].AuthorName)

	limited, err := NewGitSource(dir, "HEAD", 1).Commits(context.Background())
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	rep, err := Check(context.Background(), src, commitmsg.New(commitmsg.Options{}))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 1, rep.Failed)

	_, err = NewGitSource(dir, "no-such-ref", 0).Commits(context.Background())
	assert.Error(t, err)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func commitFile(t *testing.T, dir, name, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "--cleanup=verbatim", "-m", message)
}
