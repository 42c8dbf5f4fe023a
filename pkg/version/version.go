package version

import (
	"context"
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
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// ReleasesURL aponta para a última release publicada no GitHub.
var ReleasesURL = "https://api.github.com/repos/diillson/sales-dashboard-go/releases/latest"

// populateFromBuildInfo preenche Commit/BuildTime/Version a partir do build info
// quando o ldflags não definiu uma versão.
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

	// go install ...@vX.Y.Z grava a versão do módulo principal
	if mv := strings.TrimPrefix(bi.Main.Version, "v"); mv != "" && mv != "(devel)" {
		Version = mv
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// LatestRelease consulta a última versão publicada.
func LatestRelease(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from release check", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// CheckLatestVersion avisa quando há uma versão mais recente disponível.
// Versões dev e falhas de rede são ignoradas em silêncio.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	latest, err := LatestRelease(context.Background(), ReleasesURL)
	if err != nil || latest == "" {
		return
	}

	if CompareVersions(latest, currentVersion) > 0 {
		pterm.Warning.Println(fmt.Sprintf("A new version of Sales Dashboard is available: %s", latest))
		pterm.Info.Println("Please update using: go install github.com/diillson/sales-dashboard-go/cmd/sales-dashboard@latest")
	}
}

// CompareVersions compara duas versões X.Y.Z numericamente.
// Retorna 1 se a > b, -1 se a < b e 0 se iguais. Sufixos (-dirty, -rc1) são ignorados.
func CompareVersions(a, b string) int {
	pa, pb := versionParts(a), versionParts(b)
	for i := 0; i < 3; i++ {
		switch {
		case pa[i] > pb[i]:
			return 1
		case pa[i] < pb[i]:
			return -1
		}
	}
	return 0
}

func versionParts(v string) [3]int {
	var parts [3]int
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx >= 0 {
		v = v[:idx]
	}
	for i, s := range strings.SplitN(v, ".", 3) {
		n, err := strconv.Atoi(s)
		if err != nil {
			break
		}
		parts[i] = n
	}
	return parts
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	if Commit == "" {
		if BuildTime == "" {
			return fmt.Sprintf("%s (development)", ver)
		}
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	}

	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s)", ver, Commit)
}
