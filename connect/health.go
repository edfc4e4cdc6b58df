package connect

import (
	"context"
	"fmt"

	"adldap/analyze"

	"github.com/go-ldap/ldap/v3"
)

// Ping verifies the connection is still usable by issuing a base-object
// search against RootDSE.
func (d *ldapDirectory) Ping(ctx context.Context) error {
	req := ldap.NewSearchRequest(
		"", ldap.ScopeBaseObject, ldap.NeverDerefAliases, 0, 0, false,
		"(objectClass=*)", []string{"1.1"}, nil,
	)
	if _, err := d.conn.Search(req); err != nil {
		return fmt.Errorf("%w: ping: %v", analyze.ErrTransportFailure, err)
	}
	return nil
}
