package cmd

import (
	"crypto/tls"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/pkcs12"
)

// loadClientCert reads the --cert/--certpass flags, decodes the referenced
// PKCS#12 bundle, and assembles a tls.Certificate for BindSASLExternal. A
// no-op when --cert is unset.
func loadClientCert(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("cert")
	if path == "" {
		return nil
	}
	passphrase, _ := cmd.Flags().GetString("certpass")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading client certificate bundle: %w", err)
	}

	key, cert, caCerts, err := pkcs12.DecodeChain(data, passphrase)
	if err != nil {
		return fmt.Errorf("decoding PKCS#12 bundle %s: %w", path, err)
	}

	chain := make([][]byte, 0, len(caCerts)+1)
	chain = append(chain, cert.Raw)
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}

	tlsCert := &tls.Certificate{
		Certificate: chain,
		PrivateKey:  key,
		Leaf:        cert,
	}

	SetClientCert(tlsCert)
	return nil
}
