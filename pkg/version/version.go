package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

// ReleaseURL is queried by CheckLatestVersion.
var ReleaseURL = "https://api.github.com/repos/diillson/arrivals-dashboard-go/releases/latest"

func init() {
	populateFromBuildInfo()
}

// populateFromBuildInfo fills Version, Commit and BuildTime from the VCS
// stamps of the binary unless ldflags already set them.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	// go install module@vX.Y.Z
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// CheckLatestVersion avisa quando há uma release mais nova que currentVersion.
// Falhas de rede são ignoradas.
func CheckLatestVersion(currentVersion string) {
	latest, err := latestRelease(&http.Client{Timeout: 3 * time.Second})
	if err != nil || !IsNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Printfln("A new version of Foreign Entries Dashboard is available: %s", latest)
	pterm.Info.Println("Please update using: go install github.com/diillson/arrivals-dashboard-go/cmd/arrivals-dashboard@latest")
}

func latestRelease(client *http.Client) (string, error) {
	resp, err := client.Get(ReleaseURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// IsNewer compares dotted numeric versions ("1.10.0" > "1.9.3"). Development
// builds and unparsable versions never report an update.
func IsNewer(latest, current string) bool {
	if strings.HasSuffix(current, "-dev") {
		return false
	}
	l, okL := parseVersion(latest)
	c, okC := parseVersion(current)
	if !okL || !okC {
		return false
	}
	for i := 0; i < 3; i++ {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseVersion(v string) ([3]int, bool) {
	var out [3]int
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	case BuildTime != "":
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	default:
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
}
