package models

// Settings represents the application configuration
type Settings struct {
	Search SearchSettings `yaml:"search"`
	UI     UISettings     `yaml:"ui"`
	Editor EditorSettings `yaml:"editor"`
	Log    LogSettings    `yaml:"log"`
	DDL    DDLSettings    `yaml:"ddl"`
}

// SearchSettings controls the search and replace overlay
type SearchSettings struct {
	OpenKeys  []string `yaml:"open_keys"`
	CloseKeys []string `yaml:"close_keys"`
	MatchCase bool     `yaml:"match_case"`
	UseRegex  bool     `yaml:"use_regex"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowDescriptions bool `yaml:"show_descriptions"`
	DescriptionWidth int  `yaml:"description_width"`
}

// EditorSettings controls the query editor
type EditorSettings struct {
	ShowLineNumbers bool `yaml:"show_line_numbers"`
	CharLimit       int  `yaml:"char_limit"`
}

// DDLSettings are the defaults for CREATE TABLE generation
type DDLSettings struct {
	Language string `yaml:"language"` // hive, sparksql
	Format   string `yaml:"format"`   // csv, parquet
	Location string `yaml:"location,omitempty"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Search: SearchSettings{
			OpenKeys:  []string{"ctrl+f"},
			CloseKeys: []string{"esc"},
		},
		UI: UISettings{
			ShowDescriptions: true,
			DescriptionWidth: 72,
		},
		Editor: EditorSettings{
			ShowLineNumbers: true,
			CharLimit:       0,
		},
		Log: LogSettings{
			Level: "info",
			File:  "catalog.log",
		},
		DDL: DDLSettings{
			Language: "hive",
			Format:   "csv",
		},
	}
}

// ApplyDefaults fills zero values left by a partial settings file
func (s *Settings) ApplyDefaults() {
	defaults := DefaultSettings()
	if len(s.Search.OpenKeys) == 0 {
		s.Search.OpenKeys = defaults.Search.OpenKeys
	}
	if len(s.Search.CloseKeys) == 0 {
		s.Search.CloseKeys = defaults.Search.CloseKeys
	}
	if s.UI.DescriptionWidth <= 0 {
		s.UI.DescriptionWidth = defaults.UI.DescriptionWidth
	}
	if s.Log.Level == "" {
		s.Log.Level = defaults.Log.Level
	}
	if s.Log.File == "" {
		s.Log.File = defaults.Log.File
	}
	if s.DDL.Language == "" {
		s.DDL.Language = defaults.DDL.Language
	}
	if s.DDL.Format == "" {
		s.DDL.Format = defaults.DDL.Format
	}
}
