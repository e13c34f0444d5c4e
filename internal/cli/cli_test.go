package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the ramadan binary to a temp directory for testing.
func buildBinary(t *testing.T, ldflags string) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "ramadan")

	args := []string{"build"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	args = append(args, "-o", binPath, "../../cmd/ramadan")

	cmd := exec.Command("go", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv returns the environment with every config, cache and data
// directory pointed into a fresh temp dir.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"XDG_CACHE_HOME="+filepath.Join(dir, "cache"),
		"XDG_DATA_HOME="+filepath.Join(dir, "data"),
		"NO_COLOR=1",
	)
}

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v1.2.3-test")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "ramadan version v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestVersionFlag_Dev verifies the default "dev" version when no ldflags.
func TestVersionFlag_Dev(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	if got != "ramadan version dev" {
		t.Errorf("--version output unexpected: %q", got)
	}
}

// TestMethodsSubcommand verifies that 'methods' prints calculation methods.
func TestMethodsSubcommand(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "methods")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("methods failed: %v", err)
	}

	output := string(out)
	for _, m := range []string{
		"ISNA",
		"Muslim World League",
		"Umm Al-Qura",
		"Jafari",
		"Ministry of Awqaf, Jordan",
	} {
		if !strings.Contains(output, m) {
			t.Errorf("methods output missing %q", m)
		}
	}
}

// TestCityWithoutCountry_ExitCode verifies that errors exit non-zero with
// an "error:" prefix on stderr.
func TestCityWithoutCountry_ExitCode(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "--city", "Karachi")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.HasPrefix(string(out), "error: --country is required") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestInvalidMethodFlag_ExitCode verifies flag validation happens before
// any network access.
func TestInvalidMethodFlag_ExitCode(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "--method", "99", "--city", "Karachi", "--country", "Pakistan")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatal("expected an error for --method 99")
	}
	if !strings.Contains(string(out), "must be between 0 and 23") {
		t.Errorf("unexpected output: %q", out)
	}
}

// TestCalculationMethods_NoDuplicateIDs ensures no duplicate method IDs.
func TestCalculationMethods_NoDuplicateIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, m := range CalculationMethods {
		if seen[m.ID] {
			t.Errorf("duplicate calculation method ID: %d", m.ID)
		}
		seen[m.ID] = true
	}
}

// TestCalculationMethods_IDsAreValid ensures method IDs are in the expected range.
func TestCalculationMethods_IDsAreValid(t *testing.T) {
	for _, m := range CalculationMethods {
		if m.ID < 0 || m.ID > 23 {
			t.Errorf("method ID %d out of range 0-23", m.ID)
		}
		if m.Name == "" {
			t.Errorf("method ID %d has empty name", m.ID)
		}
	}
}

// TestHelpFlag verifies that --help shows the expected subcommands.
func TestHelpFlag(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--help").Output()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := string(out)
	for _, sub := range []string{
		"calendar",
		"day",
		"status",
		"dashboard",
		"locate",
		"config",
		"methods",
		"cache",
		"fast",
		"charity",
		"zakat",
	} {
		if !strings.Contains(output, sub) {
			t.Errorf("--help output missing subcommand %q", sub)
		}
	}
}

// TestOfflineSubcommands verifies commands that need no network run cleanly.
func TestOfflineSubcommands(t *testing.T) {
	binPath := buildBinary(t, "")
	env := isolatedEnv(t)

	for _, args := range [][]string{
		{"config"},
		{"config", "path"},
		{"cache", "prune"},
		{"fast", "status"},
		{"charity", "list"},
		{"zakat", "--cash", "100", "--gold-price", "90"},
	} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			cmd := exec.Command(binPath, args...)
			cmd.Env = env
			if out, err := cmd.CombinedOutput(); err != nil {
				t.Errorf("command %v failed: %v\n%s", args, err, out)
			}
		})
	}
}
