package troubleshoot

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/voltcraft/troubleshoot.Version=v1.2.3".
var Version = "dev"
