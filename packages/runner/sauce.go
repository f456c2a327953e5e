package runner

// The remote lab browser matrix. Every entry is a launcher name the
// external runner resolves to a browser/OS combination on the lab.
var sauceBrowsers = []string{
	"SL_Chrome",
	"SL_Chrome_Beta",
	"SL_Firefox",
	"SL_Safari",
	"SL_Edge",
	"SL_IE_11",
	"SL_Android",
	"SL_iOS",
}

// The subset known to be stable enough for restricted repositories and
// lite runs.
var sauceLabSafe = []string{
	"SL_Chrome",
	"SL_Firefox",
	"SL_Safari",
}

// SauceBrowsers returns the full remote lab browser matrix.
func SauceBrowsers() []string {
	out := make([]string, len(sauceBrowsers))
	copy(out, sauceBrowsers)
	return out
}

// SauceLabSafeBrowsers returns the lab-safe subset of the matrix.
func SauceLabSafeBrowsers() []string {
	out := make([]string, len(sauceLabSafe))
	copy(out, sauceLabSafe)
	return out
}
