package connect

import (
	"context"
	"fmt"
	"strings"

	"adldap/analyze"

	"github.com/go-ldap/ldap/v3"
)

// ldapDirectory is the concrete Directory backed by a live LDAP connection.
type ldapDirectory struct {
	conn          *ldap.Conn
	baseDN        string
	configNC      string
	schemaNC      string
	supportPaging bool
	pagingDelay   int
	pagingJitter  int
}

// NewDirectory dials, binds (per c.BindMode), and probes RootDSE for the
// naming contexts and paging support the collection pipeline needs.
func NewDirectory(c *Config) (Directory, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", analyze.ErrConfigError)
	}

	conn, err := dial(c)
	if err != nil {
		return nil, err
	}
	if err := bind(conn, c); err != nil {
		conn.Close()
		return nil, err
	}

	d := &ldapDirectory{conn: conn, baseDN: c.BaseDN, pagingDelay: c.PagingDelaySeconds, pagingJitter: c.PagingJitterSeconds}
	d.probeRootDSE()
	return d, nil
}

func (d *ldapDirectory) probeRootDSE() {
	req := ldap.NewSearchRequest(
		"", ldap.ScopeBaseObject, ldap.NeverDerefAliases, 0, 0, false,
		"(objectClass=*)",
		[]string{"defaultNamingContext", "configurationNamingContext", "schemaNamingContext", "supportedControl"},
		nil,
	)
	sr, err := d.conn.Search(req)
	if err != nil || len(sr.Entries) == 0 {
		return
	}
	root := sr.Entries[0]
	if d.baseDN == "" {
		d.baseDN = root.GetAttributeValue("defaultNamingContext")
	}
	d.configNC = root.GetAttributeValue("configurationNamingContext")
	d.schemaNC = root.GetAttributeValue("schemaNamingContext")
	for _, ctrl := range root.GetAttributeValues("supportedControl") {
		if ctrl == analyze.OIDControlTypePaging {
			d.supportPaging = true
		}
	}
}

func (d *ldapDirectory) BaseDN() string                     { return d.baseDN }
func (d *ldapDirectory) ConfigurationNamingContext() string { return d.configNC }
func (d *ldapDirectory) SchemaNamingContext() string        { return d.schemaNC }
func (d *ldapDirectory) Close() error                       { return d.conn.Close() }

// sdFlagsControl is attached to every search (spec.md §6): it asks the
// server to return Owner|Group|DACL (bits 1|2|4) and omit the SACL, which
// an unprivileged bind could not read anyway.
func sdFlagsControl() ldap.Control {
	return ldap.NewControlString(analyze.OIDControlSDFlags, true, string(analyze.SDFlagsControlValue))
}

// WhoAmI runs the "Who am I?" extended operation and strips the "u:"
// authzid prefix the server prepends to a resolved identity.
func (d *ldapDirectory) WhoAmI(ctx context.Context) (string, error) {
	res, err := d.conn.WhoAmI(nil)
	if err != nil {
		return "", fmt.Errorf("%w: whoami: %v", analyze.ErrTransportFailure, err)
	}
	return strings.TrimPrefix(res.AuthzID, "u:"), nil
}

// Search runs a paged LDAP search and streams decoded entries. Paging
// continues until the server returns no cookie; the SD-flags control is
// attached unconditionally.
func (d *ldapDirectory) Search(ctx context.Context, req SearchRequest) (<-chan *Entry, <-chan error) {
	entries := make(chan *Entry, 100)
	errs := make(chan error, 1)

	go func() {
		defer close(entries)
		defer close(errs)

		scope := req.Scope
		if scope == 0 {
			scope = ldap.ScopeWholeSubtree
		}

		searchReq := ldap.NewSearchRequest(
			req.BaseDN, scope, ldap.NeverDerefAliases,
			0, 0, false,
			req.Filter, req.Attributes,
			[]ldap.Control{sdFlagsControl()},
		)

		var pagingControl *ldap.ControlPaging
		if d.supportPaging {
			pagingControl = ldap.NewControlPaging(uint32(analyze.DefaultPagingSize))
			searchReq.Controls = append(searchReq.Controls, pagingControl)
		}

		for {
			select {
			case <-ctx.Done():
				if pagingControl != nil {
					d.abandonPaging(req.BaseDN, pagingControl)
				}
				errs <- ctx.Err()
				return
			default:
			}

			result, err := d.conn.Search(searchReq)
			if err != nil {
				if pagingControl != nil {
					d.abandonPaging(req.BaseDN, pagingControl)
				}
				errs <- fmt.Errorf("%w: %v", analyze.ErrTransportFailure, err)
				return
			}

			for _, e := range result.Entries {
				select {
				case entries <- entryFromLDAP(e):
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}

			if pagingControl == nil {
				return
			}

			pagingResult := ldap.FindControl(result.Controls, analyze.OIDControlTypePaging)
			if pagingResult == nil {
				return
			}
			cookie := pagingResult.(*ldap.ControlPaging).Cookie
			if len(cookie) == 0 {
				return
			}
			pagingControl.SetCookie(cookie)
			analyze.Pace(d.pagingDelay, d.pagingJitter)
		}
	}()

	return entries, errs
}

func (d *ldapDirectory) abandonPaging(baseDN string, control *ldap.ControlPaging) {
	control.SetCookie([]byte{})
	abandonReq := ldap.NewSearchRequest(
		baseDN, ldap.ScopeBaseObject, ldap.NeverDerefAliases,
		0, 0, false,
		"(objectClass=*)", []string{},
		[]ldap.Control{control},
	)
	_, _ = d.conn.Search(abandonReq)
}
