// Package keygen wraps the external key generation primitive.
//
// StormKeys does not implement any key-pair mathematics itself: it shells
// out to OpenSSL to generate a PKCS#8 PEM private key and derive the PEM
// public key from it. The Generator interface is the seam commands and
// workflows depend on, so tests can substitute a double for the tool.
package keygen
