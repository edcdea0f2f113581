// Package configuration defines the structured configuration view consumed
// by the reconciliation core, per spec.md §3 and §6. Parsing, defaulting,
// and validation live here; everything else (CLI flags, SMTP transport,
// dry-run pretty-printing) is an external collaborator's concern.
package configuration

import "fmt"

// ConflictResolution is one of the three policies a conflict type can be
// mapped to (spec.md §3 conflict_policy.*).
type ConflictResolution string

const (
	// ResolutionClash preserves both versions as conflict artifacts and
	// keeps the newer version as the canonical file.
	ResolutionClash ConflictResolution = "clash"
	// ResolutionNotifyOnly takes no action beyond emitting an alert.
	ResolutionNotifyOnly ConflictResolution = "notify_only"
	// ResolutionOverwriteNewer copies the newer version over the older one.
	ResolutionOverwriteNewer ConflictResolution = "overwrite_newer"
)

func (r ConflictResolution) valid() bool {
	switch r {
	case ResolutionClash, ResolutionNotifyOnly, ResolutionOverwriteNewer:
		return true
	default:
		return false
	}
}

// SoftDelete configures quarantine behavior for removed files.
type SoftDelete struct {
	// Enabled controls whether removals prefer quarantine over a hard
	// delete. Defaults to true.
	Enabled bool `yaml:"enabled"`
	// MaxSizeMB caps the size of a file eligible for soft deletion. Nil
	// means no cap.
	MaxSizeMB *int64 `yaml:"max_size_mb"`
}

// MaxSizeBytes returns the configured cap in bytes, and whether a cap is
// configured at all.
func (s SoftDelete) MaxSizeBytes() (int64, bool) {
	if s.MaxSizeMB == nil {
		return 0, false
	}
	return *s.MaxSizeMB * 1024 * 1024, true
}

// ConflictPolicy maps each conflict taxonomy entry from spec.md §4.5.6 to a
// resolution.
type ConflictPolicy struct {
	ModifyModify     ConflictResolution `yaml:"modify_modify"`
	NewNew           ConflictResolution `yaml:"new_new"`
	MetadataConflict ConflictResolution `yaml:"metadata_conflict"`
}

// Ignore configures the scanner's ignore filters (spec.md §4.2), plus the
// supplemental glob patterns described in SPEC_FULL.md §C.
type Ignore struct {
	Extensions      []string `yaml:"extensions"`
	FilenamesPrefix []string `yaml:"filenames_prefix"`
	FilenamesExact  []string `yaml:"filenames_exact"`
	Directories     []string `yaml:"directories"`
	// Patterns holds supplemental doublestar glob patterns, matched against
	// the path relative to the scan root. Not part of the distilled spec;
	// additive only.
	Patterns []string `yaml:"patterns"`
}

// Logging configures the destination and verbosity of the cycle's log
// output. Supplemented from original_source/remote_office_sync/logging_setup.py;
// the distilled spec treats logging setup as out of scope, but the
// configuration surface for it is still parsed here since config parsing is
// explicitly in scope.
type Logging struct {
	FilePath string `yaml:"file_path"`
	Level    string `yaml:"level"`
}

// Email configures the (out-of-scope) SMTP notification transport. Parsed
// and validated for shape only; no SMTP client lives in this module.
type Email struct {
	Enabled    bool     `yaml:"enabled"`
	SMTPHost   string   `yaml:"smtp_host"`
	SMTPPort   int      `yaml:"smtp_port"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	From       string   `yaml:"from"`
	To         []string `yaml:"to"`
}

// Configuration is the full recognized configuration view (spec.md §3, §6).
type Configuration struct {
	LeftRoot  string `yaml:"left_root"`
	RightRoot string `yaml:"right_root"`

	SoftDelete      SoftDelete      `yaml:"soft_delete"`
	ConflictPolicy  ConflictPolicy  `yaml:"conflict_policy"`
	Ignore          Ignore          `yaml:"ignore"`
	Logging         Logging         `yaml:"logging"`
	Email           Email           `yaml:"email"`

	// DryRun, when true, causes the executor to log actions instead of
	// applying them (spec.md §3, §4.6). Defaults to true, matching the
	// distilled spec's stated default.
	DryRun bool `yaml:"dry_run"`

	// SnapshotPath is the location of the persisted Snapshot (spec.md §4.4,
	// §6). Not named explicitly as a recognized option in spec.md §3, but
	// required by the snapshot store collaborator; defaults applied here.
	SnapshotPath string `yaml:"snapshot_path"`
}

// defaults returns a Configuration with every default value spec.md §3
// specifies applied, before any YAML is layered on top.
func defaults() Configuration {
	dryRun := true
	return Configuration{
		SoftDelete: SoftDelete{Enabled: true},
		ConflictPolicy: ConflictPolicy{
			ModifyModify:     ResolutionClash,
			NewNew:           ResolutionClash,
			MetadataConflict: ResolutionClash,
		},
		Logging: Logging{
			FilePath: "sync.log",
			Level:    "info",
		},
		Email: Email{
			SMTPPort: 587,
		},
		DryRun:       dryRun,
		SnapshotPath: "sync_state.db",
	}
}

// Load reads and validates configuration from a YAML document at path,
// applying defaults for any field the document leaves unspecified.
func Load(path string) (*Configuration, error) {
	config := defaults()
	if err := loadYAML(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate ensures required fields are present and enumerated fields carry
// recognized values. Missing left_root/right_root is a fatal configuration
// error per spec.md §6.
func (c *Configuration) Validate() error {
	if c.LeftRoot == "" {
		return fmt.Errorf("configuration error: left_root is required")
	}
	if c.RightRoot == "" {
		return fmt.Errorf("configuration error: right_root is required")
	}
	for name, resolution := range map[string]ConflictResolution{
		"conflict_policy.modify_modify":     c.ConflictPolicy.ModifyModify,
		"conflict_policy.new_new":           c.ConflictPolicy.NewNew,
		"conflict_policy.metadata_conflict": c.ConflictPolicy.MetadataConflict,
	} {
		if !resolution.valid() {
			return fmt.Errorf("configuration error: %s has invalid value %q", name, resolution)
		}
	}
	return nil
}
