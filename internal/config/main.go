package config

import (
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app          = kingpin.New("hopedit", "Beatmap editor").Version("0.1.0")
	Files        = app.Arg("files", "Maps to open").Strings()
	SettingsFile = app.Flag("settings", "Settings file").Default(defaultPath("settings.yaml")).Short('s').String()
	CacheFile    = app.Flag("cache", "Cache of open maps").Default(defaultPath("cache")).Short('c').String()
	Backend      = app.Flag("backend", "Cache backend").Default("file").Short('b').Enum("file", "sqlite")
	Assets       = app.Flag("assets", "Audio asset directory").Default("assets").Short('a').String()
	Autosave     = app.Flag("autosave", "Autosave interval, overrides the settings file").Duration()
	Divisor      = app.Flag("divisor", "Beat divisor for new maps").Default("4").Short('d').Float64()
	SoundSpace   = app.Flag("soundspace", "Read map arguments as SoundSpace maps").Bool()
)

// Parse reads the command line. It is separate from package initialisation
// so tests can import the package.
func Parse(args []string) error {
	_, err := app.Parse(args)
	return err
}

func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if nil != err {
		return name
	}
	return filepath.Join(dir, "hopedit", name)
}
