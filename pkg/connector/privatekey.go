package connector

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"

	"github.com/youmark/pkcs8"

	"github.com/ajitpratap0/snowman/pkg/errors"
)

// ParsePrivateKey decodes an RSA private key from PEM. PKCS#8 keys may be
// encrypted, in which case passphrase is required. PKCS#1 keys are accepted
// unencrypted only.
func ParsePrivateKey(pemData string, passphrase []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil && strings.Contains(pemData, `\n`) {
		// Keys stored in environment variables often carry escaped newlines
		block, _ = pem.Decode([]byte(strings.ReplaceAll(pemData, `\n`, "\n")))
	}
	if block == nil {
		return nil, errors.New(errors.ErrorTypeAuthentication, "invalid private key: no PEM block found")
	}

	switch block.Type {
	case "ENCRYPTED PRIVATE KEY":
		if len(passphrase) == 0 {
			return nil, errors.New(errors.ErrorTypeAuthentication, "private key is encrypted but no passphrase was provided")
		}
		key, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes, passphrase)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeAuthentication, "failed to decrypt private key")
		}
		return key, nil

	case "PRIVATE KEY":
		key, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeAuthentication, "invalid private key")
		}
		return key, nil

	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeAuthentication, "invalid private key")
		}
		return key, nil

	default:
		return nil, errors.Newf(errors.ErrorTypeAuthentication, "unsupported PEM block type %q", block.Type)
	}
}
