package vfs_test

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/vfs"
	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
	"github.com/jmgilman/go/vfs/vfstest"
)

func TestMkdirPTwice(t *testing.T) {
	vfstest.SetupMemory(t)

	first, err := vfs.MkdirP("/a/b/c")
	require.NoError(t, err)
	second, err := vfs.MkdirP("/a/b/c")
	require.NoError(t, err)
	require.Equal(t, "/a/b/c", first)
	require.Equal(t, first, second)
	vfstest.AssertIsDir(t, "/a/b/c")
}

func TestMkdirPOverFile(t *testing.T) {
	vfstest.SetupMemory(t)
	vfstest.AssertWriteAll(t, "/file", "x")

	_, err := vfs.MkdirP("/file")
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)
}

func TestWriteThenRead(t *testing.T) {
	dir := vfstest.Setup(t)
	file := vfs.Mash(dir, "data.bin")

	payload := []byte{0x00, 0x01, 0xfe, 0xff}
	require.NoError(t, vfs.WriteAll(file, payload))

	got, err := vfs.ReadAll(file)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestReadWithoutWrite(t *testing.T) {
	dir := vfstest.Setup(t)

	_, err := vfs.ReadAll(vfs.Mash(dir, "never-written"))
	vfstest.AssertCode(t, err, errors.CodeNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = vfs.ReadString(vfs.Mash(dir, "never-written"))
	vfstest.AssertCode(t, err, errors.CodeNotFound)
}

func TestWriteAllErrors(t *testing.T) {
	dir := vfstest.Setup(t)

	err := vfs.WriteString(vfs.Mash(dir, "missing/parent.txt"), "x")
	vfstest.AssertCode(t, err, errors.CodeNotFound)

	sub := vfstest.AssertMkdirP(t, vfs.Mash(dir, "sub"))
	err = vfs.WriteString(sub, "x")
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)
}

func TestMashNormalization(t *testing.T) {
	require.Equal(t, "/a/b", vfs.Mash("/a", "b"))
	require.Equal(t, vfs.Mash("/a", "b"), vfs.Mash("/a/", "b"))
	require.Equal(t, vfs.Mash("/a", "b"), vfs.Mash("/a", "/b"))
}

func TestRoot(t *testing.T) {
	require.Equal(t, "/", vfs.Root())
}

func TestConfigDir(t *testing.T) {
	t.Setenv(pathutil.EnvConfigHome, "/etc/xdg")
	require.Equal(t, "/etc/xdg/app", vfs.ConfigDir("app").MustGet())

	t.Setenv(pathutil.EnvConfigHome, "")
	t.Setenv(pathutil.EnvHome, "/home/u")
	require.Equal(t, "/home/u/.config/app", vfs.ConfigDir("app").MustGet())

	t.Setenv(pathutil.EnvHome, "")
	require.True(t, vfs.ConfigDir("app").IsAbsent())
}

func TestConfigDirDoesNotCreate(t *testing.T) {
	vfstest.SetupMemory(t)
	t.Setenv(pathutil.EnvConfigHome, "/etc/xdg")

	dir := vfs.ConfigDir("app").MustGet()
	vfstest.AssertNoExists(t, dir)
}

func TestMemoryThenRealScenario(t *testing.T) {
	vfstest.SetupMemory(t)
	const file = "/etc/xdg/app.toml"

	_, err := vfs.MkdirP("/etc/xdg")
	require.NoError(t, err)
	require.NoError(t, vfs.WriteString(file, "x=1"))

	got, err := vfs.ReadString(file)
	require.NoError(t, err)
	require.Equal(t, "x=1", got)

	if _, err := os.Stat(file); err == nil {
		t.Skipf("%s exists on this host", file)
	}

	require.NoError(t, vfs.SelectReal())
	require.Equal(t, core.KindReal, vfs.CurrentKind())

	_, err = vfs.ReadAll(file)
	vfstest.AssertCode(t, err, errors.CodeNotFound)
}

func TestRealThenMemoryIsolation(t *testing.T) {
	dir := vfstest.SetupReal(t)
	file := vfs.Mash(dir, "real-only.txt")
	vfstest.AssertWriteAll(t, file, "on disk")

	require.NoError(t, vfs.SelectMemory())
	vfstest.AssertNoExists(t, file)

	_, err := os.Stat(file)
	require.NoError(t, err, "memory backend must not touch the disk")
}

func TestReselectMemoryIsFresh(t *testing.T) {
	vfstest.SetupMemory(t)
	vfstest.AssertWriteAll(t, "/tmp-file", "x")

	require.NoError(t, vfs.SelectMemory())
	vfstest.AssertNoExists(t, "/tmp-file")
}

func TestPinnedBackendSurvivesSelect(t *testing.T) {
	vfstest.SetupMemory(t)
	pinned := vfs.Current()

	require.NoError(t, vfs.SelectMemory())
	require.NoError(t, pinned.WriteFile("/pinned.txt", []byte("still here")))

	data, err := pinned.ReadFile("/pinned.txt")
	require.NoError(t, err)
	require.Equal(t, "still here", string(data))
	vfstest.AssertNoExists(t, "/pinned.txt")
}

func TestSetInstallsBackend(t *testing.T) {
	vfstest.SetupMemory(t)
	b, err := billy.NewMemory(billy.WithCwd("/custom"))
	require.NoError(t, err)

	require.NoError(t, vfs.Set(b))
	require.True(t, vfs.Current() == core.Backend(b))

	cwd, err := vfs.Cwd()
	require.NoError(t, err)
	require.Equal(t, "/custom", cwd)
}

func TestRemove(t *testing.T) {
	dir := vfstest.Setup(t)
	sub := vfstest.AssertMkdirP(t, vfs.Mash(dir, "sub"))
	file := vfs.Mash(sub, "file.txt")
	vfstest.AssertWriteAll(t, file, "x")

	vfstest.AssertCode(t, vfs.Remove(sub), errors.CodeConflict)
	vfstest.AssertRemove(t, file)
	vfstest.AssertRemove(t, sub)
	vfstest.AssertCode(t, vfs.Remove(sub), errors.CodeNotFound)
}

func TestRemoveAll(t *testing.T) {
	dir := vfstest.Setup(t)
	tree := vfs.Mash(dir, "tree")
	vfstest.AssertMkdirP(t, vfs.Mash(tree, "a/b"))
	vfstest.AssertMkfile(t, vfs.Mash(tree, "a/b/c.txt"))

	vfstest.AssertRemoveAll(t, tree)
	require.NoError(t, vfs.RemoveAll(tree))
}

func TestExistsIsDirIsFile(t *testing.T) {
	dir := vfstest.Setup(t)
	file := vfstest.AssertMkfile(t, vfs.Mash(dir, "f"))

	require.True(t, vfs.Exists(dir))
	require.True(t, vfs.IsDir(dir))
	require.False(t, vfs.IsFile(dir))
	require.True(t, vfs.IsFile(file))
	require.False(t, vfs.IsDir(file))
	require.False(t, vfs.Exists(vfs.Mash(dir, "nope")))
	vfstest.AssertNoFile(t, vfs.Mash(dir, "nope"))
	vfstest.AssertNoDir(t, file)
}

func TestStat(t *testing.T) {
	dir := vfstest.Setup(t)
	file := vfs.Mash(dir, "sized.txt")
	vfstest.AssertWriteAll(t, file, "12345")

	info, err := vfs.Stat(file)
	require.NoError(t, err)
	require.Equal(t, int64(5), info.Size())
	require.Equal(t, "sized.txt", info.Name())
}

func TestAbsAndCwd(t *testing.T) {
	dir := vfstest.Setup(t)
	t.Setenv("HOME", "/home/tester")

	cwd, err := vfs.Cwd()
	require.NoError(t, err)
	require.Equal(t, dir, cwd)

	got, err := vfs.Abs("x/../y")
	require.NoError(t, err)
	require.Equal(t, vfs.Mash(dir, "y"), got)

	got, err = vfs.Abs("~")
	require.NoError(t, err)
	require.Equal(t, "/home/tester", got)

	_, err = vfs.Abs("")
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)
}

func TestChdir(t *testing.T) {
	dir := vfstest.Setup(t)
	sub := vfstest.AssertMkdirP(t, "nested/dir")

	got, err := vfs.Chdir("nested/dir")
	require.NoError(t, err)
	require.Equal(t, sub, got)
	require.Equal(t, vfs.Mash(dir, "nested/dir"), got)

	vfstest.AssertWriteAll(t, "here.txt", "x")
	vfstest.AssertIsFile(t, vfs.Mash(sub, "here.txt"))
}

func TestRenameAndCopy(t *testing.T) {
	dir := vfstest.Setup(t)
	src := vfs.Mash(dir, "src.txt")
	vfstest.AssertWriteAll(t, src, "payload")

	copied := vfs.Mash(dir, "copy.txt")
	vfstest.AssertCopyFile(t, src, copied)

	moved := vfs.Mash(dir, "moved.txt")
	require.NoError(t, vfs.Rename(src, moved))
	vfstest.AssertNoExists(t, src)
	vfstest.AssertReadAll(t, moved, "payload")
}

func TestCopyIntoDirectory(t *testing.T) {
	dir := vfstest.Setup(t)
	src := vfs.Mash(dir, "one.txt")
	vfstest.AssertWriteAll(t, src, "1")
	dst := vfstest.AssertMkdirP(t, vfs.Mash(dir, "dst"))

	require.NoError(t, vfs.Copy(src, dst))
	vfstest.AssertReadAll(t, vfs.Mash(dst, "one.txt"), "1")
}

func TestCopyTree(t *testing.T) {
	dir := vfstest.Setup(t)
	src := vfstest.AssertMkdirP(t, vfs.Mash(dir, "tree/a/b"))
	vfstest.AssertWriteAll(t, vfs.Mash(src, "leaf.txt"), "leaf")
	vfstest.AssertWriteAll(t, vfs.Mash(dir, "tree/top.txt"), "top")

	require.NoError(t, vfs.Copy(vfs.Mash(dir, "tree"), vfs.Mash(dir, "clone")))
	vfstest.AssertReadAll(t, vfs.Mash(dir, "clone/a/b/leaf.txt"), "leaf")
	vfstest.AssertReadAll(t, vfs.Mash(dir, "clone/top.txt"), "top")

	err := vfs.Copy(vfs.Mash(dir, "tree"), vfs.Mash(dir, "tree/a/inner"))
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)
}

func TestCopyRootIntoChild(t *testing.T) {
	vfstest.SetupMemory(t)
	vfstest.AssertWriteAll(t, "/f.txt", "x")
	vfstest.AssertMkdirP(t, "/backup")

	err := vfs.Copy("/", "/backup")
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)

	err = vfs.Copy("/", "/elsewhere")
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)

	paths, err := vfs.AllPaths("/backup")
	require.NoError(t, err)
	require.Empty(t, paths)
	vfstest.AssertNoExists(t, "/elsewhere")
}

func TestCopyTreeKeepsLinks(t *testing.T) {
	dir := vfstest.Setup(t)
	vfstest.AssertMkdirP(t, vfs.Mash(dir, "tree/sub"))
	vfstest.AssertWriteAll(t, vfs.Mash(dir, "tree/sub/data.txt"), "data")
	vfstest.AssertSymlink(t, vfs.Mash(dir, "tree/link"), vfs.Mash(dir, "tree/sub/data.txt"))

	require.NoError(t, vfs.Copy(vfs.Mash(dir, "tree"), vfs.Mash(dir, "clone")))

	clone := vfs.Mash(dir, "clone/link")
	vfstest.AssertReadlink(t, clone, "sub/data.txt")
	vfstest.AssertReadlinkAbs(t, clone, vfs.Mash(dir, "clone/sub/data.txt"))
	vfstest.AssertReadAll(t, clone, "data")
}

func TestSymlinkQueries(t *testing.T) {
	dir := vfstest.Setup(t)
	sub := vfstest.AssertMkdirP(t, vfs.Mash(dir, "dir"))
	file := vfstest.AssertMkfile(t, vfs.Mash(dir, "file"))
	link1 := vfstest.AssertSymlink(t, vfs.Mash(dir, "link1"), sub)
	link2 := vfstest.AssertSymlink(t, vfs.Mash(sub, "link2"), file)

	vfstest.AssertReadlink(t, link2, "../file")
	vfstest.AssertReadlinkAbs(t, link2, file)

	require.True(t, vfs.IsSymlinkDir(link1))
	require.False(t, vfs.IsSymlinkFile(link1))
	require.True(t, vfs.IsSymlinkFile(link2))
	require.False(t, vfs.IsSymlinkDir(link2))
	require.False(t, vfs.IsSymlink(file))

	// Links are neither directories nor files themselves.
	vfstest.AssertNoDir(t, link1)
	vfstest.AssertNoFile(t, link2)
	vfstest.AssertExists(t, link1)

	_, err := vfs.Readlink(file)
	vfstest.AssertCode(t, err, errors.CodeInvalidPath)
}

func TestModes(t *testing.T) {
	dir := vfstest.Setup(t)

	file, err := vfs.MkfileM(vfs.Mash(dir, "file"), 0o644)
	require.NoError(t, err)
	vfstest.AssertMode(t, file, 0o644)
	require.False(t, vfs.IsExec(file))
	require.False(t, vfs.IsReadonly(file))

	require.NoError(t, vfs.Chmod(file, 0o755))
	require.True(t, vfs.IsExec(file))

	require.NoError(t, vfs.Chmod(file, 0o444))
	require.True(t, vfs.IsReadonly(file))
	mode, err := vfs.Mode(file)
	require.NoError(t, err)
	require.True(t, mode.IsRegular())

	sub, err := vfs.MkdirM(vfs.Mash(dir, "dir"), 0o700)
	require.NoError(t, err)
	vfstest.AssertMode(t, sub, 0o700)
	vfstest.AssertIsDir(t, sub)

	require.False(t, vfs.IsExec(vfs.Mash(dir, "missing")))
	require.False(t, vfs.IsReadonly(vfs.Mash(dir, "missing")))
}

func TestStreams(t *testing.T) {
	dir := vfstest.Setup(t)
	file := vfs.Mash(dir, "file")

	f, err := vfs.Create(file)
	require.NoError(t, err)
	_, err = f.Write([]byte("foobar"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	vfstest.AssertReadAll(t, file, "foobar")

	f, err = vfs.Append(file)
	require.NoError(t, err)
	_, err = f.Write([]byte("123"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	vfstest.AssertReadAll(t, file, "foobar123")

	r, err := vfs.Open(file)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "foobar123", string(data))
	require.Equal(t, file, r.Name())
}

func TestStreamsConcurrentWithReads(t *testing.T) {
	vfstest.SetupMemory(t)
	vfstest.AssertWriteAll(t, "/log.txt", "")

	f, err := vfs.Append("/log.txt")
	require.NoError(t, err)

	var g errgroup.Group
	g.Go(func() error {
		defer f.Close()
		for i := 0; i < 100; i++ {
			if _, err := f.Write([]byte("x")); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < 100; i++ {
			if _, err := vfs.ReadAll("/log.txt"); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
	vfstest.AssertReadAll(t, "/log.txt", strings.Repeat("x", 100))
}

func TestEntries(t *testing.T) {
	vfstest.SetupMemory(t)
	tree := vfstest.AssertMkdirP(t, "/tree")
	dir := vfstest.AssertMkdirP(t, "/tree/dir")
	file := vfstest.AssertMkfile(t, "/tree/dir/file")
	link := vfstest.AssertSymlink(t, "/tree/link", "/tree/dir")

	entries, err := vfs.Entries(tree)
	require.NoError(t, err)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	require.Equal(t, []string{tree, dir, file, link}, paths)

	require.True(t, entries[1].Info.IsDir())
	require.Empty(t, entries[2].Target)
	require.True(t, entries[3].IsSymlink())
	require.Equal(t, dir, entries[3].Target)

	single, err := vfs.Entries(file)
	require.NoError(t, err)
	require.Len(t, single, 1)
	require.Equal(t, file, single[0].Path)

	_, err = vfs.Entries("/tree/missing")
	vfstest.AssertCode(t, err, errors.CodeNotFound)
}

func TestListingSkipsLinks(t *testing.T) {
	dir := vfstest.Setup(t)
	sub := vfstest.AssertMkdirP(t, vfs.Mash(dir, "sub"))
	file := vfstest.AssertMkfile(t, vfs.Mash(sub, "file"))
	toDir := vfstest.AssertSymlink(t, vfs.Mash(dir, "to-dir"), sub)
	toFile := vfstest.AssertSymlink(t, vfs.Mash(dir, "to-file"), file)

	paths, err := vfs.Paths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{sub, toDir, toFile}, paths)

	dirs, err := vfs.Dirs(dir)
	require.NoError(t, err)
	require.Equal(t, []string{sub}, dirs)

	files, err := vfs.Files(dir)
	require.NoError(t, err)
	require.Empty(t, files)

	// The walk does not descend into to-dir.
	all, err := vfs.AllPaths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{sub, file, toDir, toFile}, all)
}

func TestListing(t *testing.T) {
	dir := vfstest.Setup(t)
	dir1 := vfstest.AssertMkdirP(t, vfs.Mash(dir, "dir1"))
	dir2 := vfstest.AssertMkdirP(t, vfs.Mash(dir1, "dir2"))
	file1 := vfstest.AssertMkfile(t, vfs.Mash(dir, "file1"))
	file2 := vfstest.AssertMkfile(t, vfs.Mash(dir1, "file2"))

	paths, err := vfs.Paths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{dir1, file1}, paths)

	dirs, err := vfs.Dirs(dir)
	require.NoError(t, err)
	require.Equal(t, []string{dir1}, dirs)

	files, err := vfs.Files(dir)
	require.NoError(t, err)
	require.Equal(t, []string{file1}, files)

	all, err := vfs.AllPaths(dir)
	require.NoError(t, err)
	require.Equal(t, []string{dir1, dir2, file2, file1}, all)

	allDirs, err := vfs.AllDirs(dir)
	require.NoError(t, err)
	require.Equal(t, []string{dir1, dir2}, allDirs)

	allFiles, err := vfs.AllFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{file2, file1}, allFiles)
}

// TestConcurrentWritesAcrossSelect has many goroutines write distinct files
// while one goroutine swaps the backend. Every write must land, complete, in
// exactly one of the two backends.
func TestConcurrentWritesAcrossSelect(t *testing.T) {
	vfstest.SetupMemory(t)
	before := vfs.Current()

	const writers = 64
	content := func(i int) string {
		return strings.Repeat(fmt.Sprintf("%02d", i), 2048)
	}
	path := func(i int) string {
		return fmt.Sprintf("/w-%02d.txt", i)
	}

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			return vfs.WriteString(path(i), content(i))
		})
		if i == writers/2 {
			g.Go(func() error {
				return vfs.SelectMemory()
			})
		}
	}
	require.NoError(t, g.Wait())

	after := vfs.Current()
	require.False(t, before == after, "select did not install a new backend")

	for i := 0; i < writers; i++ {
		landed := 0
		for _, b := range []core.Backend{before, after} {
			data, err := b.ReadFile(path(i))
			if errors.HasCode(err, errors.CodeNotFound) {
				continue
			}
			require.NoError(t, err)
			require.Equal(t, content(i), string(data), "torn write to %s", path(i))
			landed++
		}
		require.Equal(t, 1, landed, "write to %s landed in %d backends", path(i), landed)
	}
}

// TestConcurrentWritesAcrossKinds is TestConcurrentWritesAcrossSelect with
// the swap going from memory to a real backend rooted in a temporary
// directory. Writes use relative paths so each lands under the working
// directory of whichever backend served it.
func TestConcurrentWritesAcrossKinds(t *testing.T) {
	disk := t.TempDir()
	vfstest.SetupMemory(t)
	before := vfs.Current()

	const writers = 64
	content := func(i int) string {
		return strings.Repeat(fmt.Sprintf("%02d", i), 2048)
	}
	path := func(i int) string {
		return fmt.Sprintf("w-%02d.txt", i)
	}

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			return vfs.WriteString(path(i), content(i))
		})
		if i == writers/2 {
			g.Go(func() error {
				return vfs.SelectReal(billy.WithCwd(disk))
			})
		}
	}
	require.NoError(t, g.Wait())

	after := vfs.Current()
	require.Equal(t, core.KindReal, after.Kind())

	for i := 0; i < writers; i++ {
		landed := 0
		for _, b := range []core.Backend{before, after} {
			data, err := b.ReadFile(path(i))
			if errors.HasCode(err, errors.CodeNotFound) {
				continue
			}
			require.NoError(t, err)
			require.Equal(t, content(i), string(data), "torn write to %s", path(i))
			landed++
		}
		require.Equal(t, 1, landed, "write to %s landed in %d backends", path(i), landed)
	}

	// Nothing but the landed files, and no leftover temporaries, on disk.
	names, err := os.ReadDir(disk)
	require.NoError(t, err)
	for _, name := range names {
		require.True(t, strings.HasPrefix(name.Name(), "w-") && strings.HasSuffix(name.Name(), ".txt"),
			"unexpected entry %s", name.Name())
	}
}

func TestConcurrentReadersDuringSelect(t *testing.T) {
	vfstest.SetupMemory(t)
	vfstest.AssertWriteAll(t, "/shared.txt", "stable")
	pinned := vfs.Current()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				data, err := pinned.ReadFile("/shared.txt")
				if err != nil {
					return err
				}
				if string(data) != "stable" {
					return fmt.Errorf("read %q", data)
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		for j := 0; j < 10; j++ {
			if err := vfs.SelectMemory(); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
}
