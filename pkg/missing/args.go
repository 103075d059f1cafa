package missing

import "github.com/riverqueue/river"

// missingKeyArgs is the River job payload for one missed translation key.
type missingKeyArgs struct {
	Locale  string `json:"locale"`
	Key     string `json:"key"`
	Default string `json:"default,omitempty"`
}

func (missingKeyArgs) Kind() string {
	return "i18n:missing_key"
}

// InsertOpts deduplicates reports: while a job for a locale/key pair is
// outstanding, identical reports are dropped. Once the job completes, a
// later miss may enqueue a fresh one.
func (missingKeyArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByArgs: true},
	}
}
