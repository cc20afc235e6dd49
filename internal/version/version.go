package version

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/mbraun/dropdash/internal/version.Version=...".
var Version = "dev"
