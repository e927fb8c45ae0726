package version

import "fmt"

var (
	// Set at build time with -ldflags "-X".
	Version   = "dev"
	CommitSHA = "unknown"
)

func GetVersionInfo() string {
	return "hashcards " + Version
}

func GetDetailedVersionInfo() string {
	return fmt.Sprintf("hashcards\nVersion:  %s\nCommit:   %s\n", Version, CommitSHA)
}
