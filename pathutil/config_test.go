package pathutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv(EnvConfigHome, "/etc/xdg")
	t.Setenv(EnvHome, "/home/u")

	dir, ok := ConfigDir("app").Get()
	require.True(t, ok)
	require.Equal(t, "/etc/xdg/app", dir)
}

func TestConfigDir_Home(t *testing.T) {
	t.Setenv(EnvConfigHome, "")
	t.Setenv(EnvHome, "/home/u")

	dir, ok := ConfigDir("app").Get()
	require.True(t, ok)
	require.Equal(t, "/home/u/.config/app", dir)
}

func TestConfigDir_None(t *testing.T) {
	t.Setenv(EnvConfigHome, "")
	t.Setenv(EnvHome, "")

	require.True(t, ConfigRoot().IsAbsent())
	require.True(t, ConfigDir("app").IsAbsent())
}

func TestConfigDir_ReadsEnvironmentEachCall(t *testing.T) {
	t.Setenv(EnvConfigHome, "/first")
	require.Equal(t, "/first/app", ConfigDir("app").MustGet())

	t.Setenv(EnvConfigHome, "/second")
	require.Equal(t, "/second/app", ConfigDir("app").MustGet())
}

func TestConfigRoot_TrailingSeparator(t *testing.T) {
	t.Setenv(EnvConfigHome, "")
	t.Setenv(EnvHome, "/home/u/")

	require.Equal(t, "/home/u/.config", ConfigRoot().MustGet())
}
