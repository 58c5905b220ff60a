package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
)

// fakeGenerator is a test double for the key generation primitive. It
// writes placeholder artifacts and can be told to fail, or to report
// success without writing, for paths containing a given substring.
type fakeGenerator struct {
	generateCalls []string
	deriveCalls   []string

	failPrivateFor string
	failPublicFor  string
	failErr        error

	// skipPublicWriteFor simulates a tool that reports success without
	// actually producing the public key file.
	skipPublicWriteFor string
}

func (f *fakeGenerator) GeneratePrivateKey(path string, bits int) error {
	f.generateCalls = append(f.generateCalls, path)
	if f.failPrivateFor != "" && strings.Contains(path, f.failPrivateFor) {
		return f.failErr
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("fake private key (%d bits)\n", bits)), 0600)
}

func (f *fakeGenerator) DerivePublicKey(privateKeyPath, publicKeyPath string) error {
	f.deriveCalls = append(f.deriveCalls, publicKeyPath)
	if f.failPublicFor != "" && strings.Contains(publicKeyPath, f.failPublicFor) {
		return f.failErr
	}
	if f.skipPublicWriteFor != "" && strings.Contains(publicKeyPath, f.skipPublicWriteFor) {
		return nil
	}
	return os.WriteFile(publicKeyPath, []byte("fake public key\n"), 0644)
}

func tempRoot(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return tmpDir
}

func TestProvision_GeneratesAllLocations(t *testing.T) {
	root := tempRoot(t)
	generator := &fakeGenerator{}

	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: []string{"a", "b"},
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result.Locations) != 2 {
		t.Fatalf("Expected 2 location results, got: %d", len(result.Locations))
	}
	// Results come back in configured order.
	if result.Locations[0].Location != "a" || result.Locations[1].Location != "b" {
		t.Errorf("Unexpected ordering: %+v", result.Locations)
	}
	for _, locationResult := range result.Locations {
		if locationResult.Outcome != OutcomeGenerated {
			t.Errorf("Location %s: expected generated, got: %s", locationResult.Location, locationResult.Outcome)
		}
		if _, err := os.Stat(locationResult.PrivateKeyPath); err != nil {
			t.Errorf("Private key missing at %s", locationResult.PrivateKeyPath)
		}
		if _, err := os.Stat(locationResult.PublicKeyPath); err != nil {
			t.Errorf("Public key missing at %s", locationResult.PublicKeyPath)
		}
	}
	if result.Summary.Generated != 2 || result.Summary.Skipped != 0 || result.Summary.Failed != 0 {
		t.Errorf("Unexpected summary: %+v", result.Summary)
	}

	verifyResult, err := Verify(context.Background(), VerifyOptions{Root: root, Locations: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !verifyResult.Complete {
		t.Errorf("Expected complete verification, got missing: %+v", verifyResult.Missing)
	}
}

func TestProvision_IdempotentSkip(t *testing.T) {
	root := tempRoot(t)
	locations := []string{"a", "b"}

	first, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: locations,
		Generator: &fakeGenerator{},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if first.Summary.Generated != 2 {
		t.Fatalf("Expected 2 generated on first run, got: %+v", first.Summary)
	}

	// Record artifact contents so we can prove the second run touched nothing.
	before := make(map[string][]byte)
	for _, locationResult := range first.Locations {
		for _, path := range []string{locationResult.PrivateKeyPath, locationResult.PublicKeyPath} {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read %s: %v", path, err)
			}
			before[path] = data
		}
	}

	secondGenerator := &fakeGenerator{}
	second, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: locations,
		Generator: secondGenerator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, locationResult := range second.Locations {
		if locationResult.Outcome != OutcomeSkipped {
			t.Errorf("Location %s: expected skipped, got: %s", locationResult.Location, locationResult.Outcome)
		}
	}
	if len(secondGenerator.generateCalls) != 0 || len(secondGenerator.deriveCalls) != 0 {
		t.Errorf("Expected no primitive calls on second run, got: %v / %v",
			secondGenerator.generateCalls, secondGenerator.deriveCalls)
	}
	for path, want := range before {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to re-read %s: %v", path, err)
		}
		if string(got) != string(want) {
			t.Errorf("Artifact %s changed across an idempotent run", path)
		}
	}
}

func TestProvision_ForceRegenerates(t *testing.T) {
	root := tempRoot(t)
	locations := []string{"a"}

	if _, err := Provision(context.Background(), ProvisionOptions{
		Root: root, Locations: locations, Generator: &fakeGenerator{},
	}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	generator := &fakeGenerator{}
	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: locations,
		Force:     true,
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Locations[0].Outcome != OutcomeGenerated {
		t.Errorf("Expected generated under force, got: %s", result.Locations[0].Outcome)
	}
	if len(generator.generateCalls) != 1 || len(generator.deriveCalls) != 1 {
		t.Errorf("Expected the primitive to be re-invoked, got: %v / %v",
			generator.generateCalls, generator.deriveCalls)
	}
}

func TestProvision_PartialFailureIsolation(t *testing.T) {
	root := tempRoot(t)
	generator := &fakeGenerator{
		failPrivateFor: filepath.Join("a", "privateKey.pem"),
		failErr:        fmt.Errorf("%w: mocked tool failure", kerrors.ErrGenerationFailed),
	}

	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: []string{"a", "b"},
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Locations[0].Outcome != OutcomeFailed {
		t.Errorf("Location a: expected failed, got: %s", result.Locations[0].Outcome)
	}
	if !strings.Contains(result.Locations[0].Diagnostic, "mocked tool failure") {
		t.Errorf("Expected diagnostic to surface tool output, got: %q", result.Locations[0].Diagnostic)
	}
	if result.Locations[1].Outcome != OutcomeGenerated {
		t.Errorf("Location b: expected generated despite a failing, got: %s", result.Locations[1].Outcome)
	}
	if result.Summary.Failed != 1 || result.Summary.Generated != 1 {
		t.Errorf("Unexpected summary: %+v", result.Summary)
	}
}

func TestProvision_ToolUnavailable(t *testing.T) {
	root := tempRoot(t)
	generator := &fakeGenerator{
		failPrivateFor: "privateKey.pem",
		failErr:        fmt.Errorf("%w: install OpenSSL", kerrors.ErrToolUnavailable),
	}

	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: []string{"a", "b"},
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, locationResult := range result.Locations {
		if locationResult.Outcome != OutcomeFailed {
			t.Errorf("Location %s: expected failed, got: %s", locationResult.Location, locationResult.Outcome)
		}
	}

	verifyResult, err := Verify(context.Background(), VerifyOptions{Root: root, Locations: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if verifyResult.Complete {
		t.Error("Expected incomplete verification when the tool is unavailable")
	}
	if len(verifyResult.Missing) != 2 {
		t.Errorf("Expected 2 missing locations, got: %d", len(verifyResult.Missing))
	}
}

func TestProvision_PublicDerivationFailure(t *testing.T) {
	root := tempRoot(t)
	generator := &fakeGenerator{
		failPublicFor: filepath.Join("a", "publicKey.pem"),
		failErr:       fmt.Errorf("%w: unable to load Private Key", kerrors.ErrGenerationFailed),
	}

	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: []string{"a"},
		Generator: generator,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Locations[0].Outcome != OutcomeFailed {
		t.Errorf("Expected failed when public derivation fails, got: %s", result.Locations[0].Outcome)
	}
	if !errors.Is(generator.failErr, kerrors.ErrGenerationFailed) {
		t.Error("Test setup: failErr should wrap ErrGenerationFailed")
	}
}

func TestProvision_CreatesNestedLocationDirectories(t *testing.T) {
	root := tempRoot(t)

	result, err := Provision(context.Background(), ProvisionOptions{
		Root:      root,
		Locations: []string{"auth/src/main/resources/keys"},
		Generator: &fakeGenerator{},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Locations[0].Outcome != OutcomeGenerated {
		t.Fatalf("Expected generated, got: %s", result.Locations[0].Outcome)
	}

	dir := filepath.Join(root, "auth", "src", "main", "resources", "keys")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected nested location directory at %s", dir)
	}
}

func TestOutcome_String(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeSkipped:   "skipped",
		OutcomeGenerated: "generated",
		OutcomeFailed:    "failed",
		Outcome(42):      "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("Outcome(%d).String(): expected %s, got: %s", int(outcome), want, got)
		}
	}
}

func TestOutcome_MarshalJSON(t *testing.T) {
	data, err := OutcomeGenerated.MarshalJSON()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != `"generated"` {
		t.Errorf(`Expected "generated", got: %s`, data)
	}
}

func TestOutcome_UnmarshalJSON(t *testing.T) {
	var outcome Outcome
	if err := outcome.UnmarshalJSON([]byte(`"failed"`)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if outcome != OutcomeFailed {
		t.Errorf("Expected OutcomeFailed, got: %s", outcome)
	}

	if err := outcome.UnmarshalJSON([]byte(`"exploded"`)); !errors.Is(err, kerrors.ErrUnknownOutcome) {
		t.Errorf("Expected ErrUnknownOutcome, got: %v", err)
	}
}
