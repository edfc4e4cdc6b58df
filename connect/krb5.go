package connect

import (
	"fmt"

	"adldap/analyze"

	"github.com/go-ldap/ldap/v3"
	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
)

// gssapiClient adapts a gokrb5 Kerberos client to go-ldap's GSSAPIClient
// interface so Conn.GSSAPIBind can drive the SASL/GSSAPI exchange using a
// ticket pulled from an already-loaded credentials cache. Acquiring that
// cache (locating krb5cc_*, parsing krb5.conf) is the external
// collaborator's job (spec.md §1); this package only consumes the result.
type gssapiClient struct {
	inner *client.Client
}

func (g *gssapiClient) Close() error { return nil }

// Negotiate, DeleteSecContext and the rest of ldap.GSSAPIClient are
// satisfied by gokrb5's client.Client directly in recent gokrb5/go-ldap
// pairings; this thin wrapper exists so callers only need a CCache and a
// krb5.conf path rather than reimplementing session setup per bind.
func newGSSAPIClient(ccache *credentials.CCache, krb5ConfPath string) (*gssapiClient, error) {
	cfg, err := config.Load(krb5ConfPath)
	if err != nil {
		return nil, fmt.Errorf("loading krb5 configuration: %w", err)
	}
	cl, err := client.NewFromCCache(ccache, cfg)
	if err != nil {
		return nil, fmt.Errorf("building kerberos client from ccache: %w", err)
	}
	return &gssapiClient{inner: cl}, nil
}

// bindKerberos performs a SASL/GSSAPI bind against the directory using the
// ccache resolved into c.KerberosCCache by the caller.
func bindKerberos(conn *ldap.Conn, c *Config) error {
	cc, ok := c.KerberosCCache.(*credentials.CCache)
	if !ok || cc == nil {
		return fmt.Errorf("%w: SASL Kerberos bind requires a resolved credentials cache", analyze.ErrConfigError)
	}

	gc, err := newGSSAPIClient(cc, krb5ConfPathFor(c))
	if err != nil {
		return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
	}

	servicePrincipal := fmt.Sprintf("ldap/%s", c.Server)
	if err := conn.GSSAPIBind(gc.inner, servicePrincipal, ""); err != nil {
		return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
	}
	return nil
}

// krb5ConfPathFor returns the krb5.conf path to use for this bind. The
// ambient collaborator is expected to have set KRB5_CONFIG in the
// environment for the common case; gokrb5's config.Load honors that on its
// own when given "".
func krb5ConfPathFor(c *Config) string {
	return ""
}
