package config

const (
	defaultConfigPath       = "~/.config/skelreview/config.toml"
	defaultDatasetRoot      = "~/NTU_DB"
	defaultLedgerDir        = "~/.local/share/skelreview/ledgers"
	defaultLogDir           = "~/.local/share/skelreview/logs"
	defaultJournalFile      = "journal.db"
	defaultCategory         = CategoryDailyActions
	defaultAction           = "A022"
	defaultVideoExt         = ".avi"
	defaultSkeletonExt      = ".skeleton"
	defaultMode             = ModeAll
	defaultFrameRate        = 30
	maxFrameRate            = 240
	defaultDocumentCacheTTL = 300
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultFFplayBinary     = "ffplay"
	defaultWindowTitle      = "skelreview"
	defaultMarkerRadius     = 4
	defaultLineWidth        = 2
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Review modes.
const (
	ModeAll  = "all"
	ModeGood = "good"
	ModeBad  = "bad"
)

// Dataset categories as laid out under the dataset root.
const (
	CategoryDailyActions      = "Daily_Actions"
	CategoryMedicalConditions = "Medical_Conditions"
	CategoryMutualConditions  = "Mutual_Conditions"
)

// Categories lists the known dataset categories.
var Categories = []string{CategoryDailyActions, CategoryMedicalConditions, CategoryMutualConditions}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatasetRoot: defaultDatasetRoot,
			LedgerDir:   defaultLedgerDir,
			LogDir:      defaultLogDir,
		},
		Dataset: Dataset{
			Category:    defaultCategory,
			Action:      defaultAction,
			VideoExt:    defaultVideoExt,
			SkeletonExt: defaultSkeletonExt,
		},
		Review: Review{
			Mode:             defaultMode,
			Persist:          true,
			FrameRate:        defaultFrameRate,
			DocumentCacheTTL: defaultDocumentCacheTTL,
			Keys: Keys{
				Backward: "q",
				Forward:  "e",
				Exclude:  "x",
				Include:  "i",
				Quit:     "esc",
			},
		},
		Media: Media{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			FFplayBinary:  defaultFFplayBinary,
			WindowTitle:   defaultWindowTitle,
			MarkerRadius:  defaultMarkerRadius,
			LineWidth:     defaultLineWidth,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
