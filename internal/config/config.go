package config

const (
	DefaultTimeZone = "Asia/Jakarta"

	// Unit code format: KPU-XXXXXX, X drawn from UnitCodeAlphabet.
	UnitCodePrefix      = "KPU-"
	UnitCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	UnitCodeLength      = 6
	UnitCodeMaxAttempts = 20

	// Header detection scans at most this many leading rows.
	HeaderScanLimit = 10

	// Summary detail lists are truncated to this many entries.
	MaxDetailEntries = 10

	MaxUploadBytes = 32 << 20

	// Nightly statistics snapshot schedule.
	DefaultStatsSchedule = "0 1 * * *"
)
