package keygen

import (
	"fmt"
	"os/exec"
	"strings"

	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
)

// OpenSSL invokes the openssl binary to generate and derive keys.
type OpenSSL struct {
	// Binary is the executable name or path. Defaults to "openssl".
	Binary string
}

// NewOpenSSL returns a generator that uses the openssl binary from PATH.
func NewOpenSSL() *OpenSSL {
	return &OpenSSL{Binary: "openssl"}
}

// GeneratePrivateKey writes a PKCS#8 PEM RSA private key to path.
// genpkey emits PKCS#8 by default, which is the encoding the token
// services require.
func (g *OpenSSL) GeneratePrivateKey(path string, bits int) error {
	binary, err := g.lookup()
	if err != nil {
		return err
	}

	cmd := exec.Command(binary, "genpkey",
		"-algorithm", "RSA",
		"-pkeyopt", fmt.Sprintf("rsa_keygen_bits:%d", bits),
		"-out", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", kerrors.ErrGenerationFailed, diagnostic(output, err))
	}
	return nil
}

// DerivePublicKey writes the PEM public key for the private key at
// privateKeyPath to publicKeyPath.
func (g *OpenSSL) DerivePublicKey(privateKeyPath, publicKeyPath string) error {
	binary, err := g.lookup()
	if err != nil {
		return err
	}

	cmd := exec.Command(binary, "rsa",
		"-in", privateKeyPath,
		"-pubout",
		"-out", publicKeyPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", kerrors.ErrGenerationFailed, diagnostic(output, err))
	}
	return nil
}

func (g *OpenSSL) lookup() (string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "openssl"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: install OpenSSL or add %s to your PATH", kerrors.ErrToolUnavailable, binary)
	}
	return path, nil
}

// diagnostic prefers the tool's own stderr/stdout text over the exec error.
func diagnostic(output []byte, err error) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return err.Error()
	}
	return text
}
