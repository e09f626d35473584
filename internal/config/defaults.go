package config

const (
	defaultConfigPath     = "~/.config/nasutil/config.toml"
	defaultQueueFile      = "~/.nasutil-to-download.txt"
	defaultNASSubdir      = "syncthing"
	defaultHistoryDB      = "~/.local/share/nasutil/history.db"
	defaultHistoryLimit   = 20
	defaultYTDLPBinary    = "yt-dlp"
	defaultYTDLPFormat    = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	defaultMergeFormat    = "mp4"
	defaultOutputTemplate = "%(uploader)s---%(title)s.%(ext)s"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

var defaultNASRoots = []string{"/media/nas", "//DAVISON-NAS/918-share", "Y://"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			QueueFile: defaultQueueFile,
			NASRoots:  append([]string(nil), defaultNASRoots...),
			NASSubdir: defaultNASSubdir,
			HistoryDB: defaultHistoryDB,
		},
		YTDLP: YTDLP{
			Binary:         defaultYTDLPBinary,
			Format:         defaultYTDLPFormat,
			MergeFormat:    defaultMergeFormat,
			OutputTemplate: defaultOutputTemplate,
		},
		History: History{
			Enabled:   true,
			ListLimit: defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
