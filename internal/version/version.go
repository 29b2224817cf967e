package version

// Version is overridden at build time with -ldflags "-X chopper/internal/version.Version=...".
var Version = "dev"
