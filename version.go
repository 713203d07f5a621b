package autocore

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/autocore.Version=...".
var Version = "0.7.0"
