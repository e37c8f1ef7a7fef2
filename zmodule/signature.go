package zmodule

import (
	"crypto/x509"

	"go.mozilla.org/pkcs7"

	"github.com/zata-lang/zvm/zerror"
)

// VerifySignature checks a detached PKCS#7 signature over a module file's
// bytes against roots, mirroring the optional authenticode check a PE
// loader performs before trusting an image. Off by default; cmd/zvm only
// calls this when run --verify is given (§4.6 extension - module files
// have no signing story in the source this was distilled from).
func VerifySignature(moduleBytes, signature []byte, roots *x509.CertPool) error {
	p7, err := pkcs7.Parse(signature)
	if err != nil {
		return zerror.New(zerror.IOErr, "parse module signature: %v", err)
	}
	p7.Content = moduleBytes
	if err := p7.VerifyWithChain(roots); err != nil {
		return zerror.New(zerror.IOErr, "module signature verification failed: %v", err)
	}
	return nil
}
