package lingo

// Name is the library name, used in user agents and CLI output.
const Name = "lingo"

// Version is the semantic version.
const Version = "0.1.0"

// GitCommit is the git commit hash, set at build time:
//
//	go build -ldflags "-X github.com/ZaguanLabs/lingo.GitCommit=$(git rev-parse HEAD)"
var GitCommit = "unknown"

// FullVersion returns the version string with the short commit hash
// appended when one was set at build time.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns a user agent string for HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}
