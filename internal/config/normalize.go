package config

import "strings"

// normalize expands every path field and fills blanks with defaults so the
// rest of the program only ever sees absolute paths.
func (c *Config) normalize() error {
	defaults := Default()

	fill := func(value, fallback string) string {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		return value
	}

	c.Paths.MetadataFile = fill(c.Paths.MetadataFile, defaults.Paths.MetadataFile)
	c.Paths.ImagesDir = fill(c.Paths.ImagesDir, defaults.Paths.ImagesDir)
	c.Paths.LookupFile = fill(c.Paths.LookupFile, defaults.Paths.LookupFile)
	c.Paths.LogDir = fill(c.Paths.LogDir, defaults.Paths.LogDir)
	c.Serve.Bind = fill(c.Serve.Bind, defaults.Serve.Bind)
	c.Serve.StaticDir = fill(c.Serve.StaticDir, defaults.Serve.StaticDir)
	c.Logging.Format = fill(c.Logging.Format, defaults.Logging.Format)
	c.Logging.Level = fill(c.Logging.Level, defaults.Logging.Level)

	for _, field := range []*string{
		&c.Paths.MetadataFile,
		&c.Paths.ImagesDir,
		&c.Paths.LookupFile,
		&c.Paths.LogDir,
		&c.Serve.StaticDir,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if strings.TrimSpace(c.History.Path) != "" {
		expanded, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	}

	return nil
}
