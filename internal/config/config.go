package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Lexicon LexiconConfig `mapstructure:"lexicon"`
	Session SessionConfig `mapstructure:"session"`
	SRS     SRSConfig     `mapstructure:"srs"`
	UI      UIConfig      `mapstructure:"ui"`
}

// LogConfig controls the structured diagnostic log. Stdout belongs to the
// interactive session, so logs go to File or, when it is empty, to stderr.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// StorageConfig selects and configures the deck store.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=file sqlite postgres"`
	// Path is the YAML snapshot for the file driver or the database file for sqlite.
	Path string `mapstructure:"path" validate:"required_unless=Driver postgres"`
	URL  string `mapstructure:"url" validate:"required_if=Driver postgres"`
	// Owner keys the deck rows in the SQL stores.
	Owner string `mapstructure:"owner" validate:"required"`
}

// LexiconConfig points at the reference data files.
type LexiconConfig struct {
	CEDICTPath string `mapstructure:"cedict_path" validate:"required"`
	HSKPath    string `mapstructure:"hsk_path"`
	CHISEPath  string `mapstructure:"chise_path"`
}

// SessionConfig tunes card selection.
type SessionConfig struct {
	SampleSize int `mapstructure:"sample_size" validate:"gt=0"`
}

// SRSConfig overrides scheduler parameters. Zero values keep the defaults.
type SRSConfig struct {
	MinEaseFactor           float64 `mapstructure:"min_ease_factor" validate:"omitempty,gt=1"`
	MaxEaseFactor           float64 `mapstructure:"max_ease_factor" validate:"omitempty,gtfield=MinEaseFactor"`
	AgainReviewMinutes      int     `mapstructure:"again_review_minutes" validate:"gte=0"`
	FirstReviewGoodInterval int     `mapstructure:"first_review_good_interval" validate:"gte=0"`
}

// UIConfig controls terminal presentation.
type UIConfig struct {
	Color string `mapstructure:"color" validate:"required,oneof=auto always never"`
}
