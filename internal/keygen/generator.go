package keygen

// Generator produces RSA key pair artifacts on disk.
type Generator interface {
	// GeneratePrivateKey writes a new RSA private key of the given modulus
	// size, PKCS#8 PEM encoded, to path.
	GeneratePrivateKey(path string, bits int) error

	// DerivePublicKey reads the private key at privateKeyPath and writes
	// the corresponding PEM public key to publicKeyPath.
	DerivePublicKey(privateKeyPath, publicKeyPath string) error
}
