package config

const (
	defaultMetadataFile = "assets_catalogue.csv"
	defaultImagesDir    = "images"
	defaultLookupFile   = "image_base64_lookup.json"
	defaultLogDir       = "~/.local/share/inlay/logs"
	defaultServeBind    = "127.0.0.1:8080"
	defaultStaticDir    = "."
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. Relative
// paths follow the working-directory conventions of the toolkit: the
// metadata CSV and images folder are expected next to wherever the
// converter is run.
func Default() Config {
	return Config{
		Paths: Paths{
			MetadataFile: defaultMetadataFile,
			ImagesDir:    defaultImagesDir,
			LookupFile:   defaultLookupFile,
			LogDir:       defaultLogDir,
		},
		Serve: Serve{
			Bind:      defaultServeBind,
			StaticDir: defaultStaticDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
