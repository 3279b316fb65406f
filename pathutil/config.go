package pathutil

import (
	"os"

	"github.com/samber/mo"
)

const (
	// EnvConfigHome names the variable that overrides the config root.
	EnvConfigHome = "XDG_CONFIG_HOME"
	// EnvHome names the variable holding the user's home directory.
	EnvHome = "HOME"

	configSubdir = ".config"
)

// ConfigRoot returns the per-user configuration root.
//
// $XDG_CONFIG_HOME wins when set and non-empty; otherwise $HOME/.config is
// used when HOME is set and non-empty. With neither available the result is
// None. The environment is read on every call.
func ConfigRoot() mo.Option[string] {
	if xdg, ok := lookup(EnvConfigHome); ok {
		return mo.Some(xdg)
	}
	if home, ok := lookup(EnvHome); ok {
		return mo.Some(Mash(home, configSubdir))
	}
	return mo.None[string]()
}

// ConfigDir returns the configuration directory for app below ConfigRoot.
// It never creates anything.
func ConfigDir(app string) mo.Option[string] {
	root, ok := ConfigRoot().Get()
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(Mash(root, app))
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
