// Package bdfr declares the configuration shape of the Bulk Downloader For
// Reddit and exposes its process-wide field catalog.
package bdfr

import (
	"sync"

	"github.com/goliatone/go-bdfrgen/pkg/fieldmeta"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

// InputConfiguration is the root configuration of a download run.
type InputConfiguration struct {
	Directory                 string                  `bdfr:"directory"`
	Authenticate              bool                    `bdfr:"authenticate"`
	Config                    string                  `bdfr:"config"`
	Opts                      string                  `bdfr:"opts"`
	DisableModule             []string                `bdfr:"disable_module"`
	FilenameRestrictionScheme string                  `bdfr:"filename_restriction_scheme"`
	IgnoreUser                []string                `bdfr:"ignore_user"`
	IncludeIDFile             []string                `bdfr:"include_id_file"`
	Log                       string                  `bdfr:"log"`
	Saved                     bool                    `bdfr:"saved"`
	Search                    string                  `bdfr:"search"`
	Submitted                 bool                    `bdfr:"submitted"`
	Upvoted                   bool                    `bdfr:"upvoted"`
	Limit                     *int                    `bdfr:"limit"`
	Sort                      SortType                `bdfr:"sort"`
	Link                      []string                `bdfr:"link"`
	Multireddit               []string                `bdfr:"multireddit"`
	Subreddit                 []string                `bdfr:"subreddit"`
	Time                      TimeFilter              `bdfr:"time"`
	TimeFormat                string                  `bdfr:"time_format"`
	User                      []string                `bdfr:"user"`
	Verbose                   int                     `bdfr:"verbose" flag:"-v,repeat"`
	DownloadConfig            DownloaderConfiguration `bdfr:"download_config"`
	ArchiverConfig            ArchiverConfiguration   `bdfr:"archiver_config"`
}

// DownloaderConfiguration holds the options specific to downloading.
type DownloaderConfiguration struct {
	MakeHardLinks  bool     `bdfr:"make_hard_links" flag:"--hard-link"`
	MaxWaitTime    int      `bdfr:"max_wait_time"`
	NoDupes        bool     `bdfr:"no_dupes"`
	SearchExisting bool     `bdfr:"search_existing"`
	FileScheme     string   `bdfr:"file_scheme"`
	FolderScheme   string   `bdfr:"folder_scheme"`
	ExcludeID      []string `bdfr:"exclude_id"`
	ExcludeIDFile  []string `bdfr:"exclude_id_file"`
	SkipDomain     []string `bdfr:"skip_domain"`
	Skip           []string `bdfr:"skip"`
	SkipSubreddit  []string `bdfr:"skip_subreddit"`
	MinScore       *int     `bdfr:"min_score"`
	MaxScore       *int     `bdfr:"max_score"`
	MinScoreRatio  *float64 `bdfr:"min_score_ratio"`
	MaxScoreRatio  *float64 `bdfr:"max_score_ratio"`
}

// ArchiverConfiguration holds the options specific to archiving.
type ArchiverConfiguration struct {
	AllComments    bool   `bdfr:"all_comments"`
	Format         Format `bdfr:"format" flag:"-f"`
	CommentContext bool   `bdfr:"comment_context"`
}

// Defaults returns the configuration the downloader assumes when no flag is
// given.
func Defaults() InputConfiguration {
	return InputConfiguration{
		Sort: SortHot,
		Time: TimeAll,
		DownloadConfig: DownloaderConfiguration{
			MaxWaitTime:  120,
			FileScheme:   "{REDDITOR}_{TITLE}_{POSTID}",
			FolderScheme: "{SUBREDDIT}",
		},
		ArchiverConfig: ArchiverConfiguration{
			Format: FormatJSON,
		},
	}
}

// Catalog holds the schema built from Defaults, with the embedded field
// documents attached, plus the diagnostics gathered while building it.
type Catalog struct {
	Schema      *schema.Schema
	Diagnostics []schema.Diagnostic
	Metadata    *fieldmeta.Store
}

var loadCatalog = sync.OnceValues(func() (*Catalog, error) {
	store, err := fieldmeta.LoadFS(fieldmeta.EmbeddedFS())
	if err != nil {
		return nil, err
	}
	return BuildCatalog(store)
})

// DefaultCatalog returns the process-wide catalog. It is built on first use
// and read-only afterwards.
func DefaultCatalog() (*Catalog, error) {
	return loadCatalog()
}

// BuildCatalog builds a fresh catalog using the supplied metadata source.
// Callers loading extra documents (for example from a user directory) use it
// instead of DefaultCatalog.
func BuildCatalog(store *fieldmeta.Store) (*Catalog, error) {
	s, diags, err := schema.Build(Defaults(), schema.WithName("input"), schema.WithMetadata(store))
	if err != nil {
		return nil, err
	}
	return &Catalog{Schema: s, Diagnostics: diags, Metadata: store}, nil
}
