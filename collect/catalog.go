// Package collect implements the Enumeration Pipeline: it drives a
// connect.Directory through the fixed query categories, normalizes and
// post-processes every entry, and accumulates the cross-reference catalogs
// the Graph Assembler needs to resolve DNs, SIDs, and memberships into each
// other (spec.md §2, §4.3-§4.5).
package collect

import (
	"strings"
	"sync"

	"adldap/analyze"
)

// PrincipalRef is a catalog-resident reference to a principal by SID,
// carrying just enough to resolve membership/ownership without re-reading
// the original entry.
type PrincipalRef struct {
	SAMAccountName string
	Class          string
}

// Catalogs accumulates the cross-reference tables spec.md §2 names (SID
// Catalog, domain lookup tables, GPO map, member map, computer map,
// cert-template map) as the pipeline enumerates. All catalogs are built
// monotonically during Enumerating and must be treated as read-only once
// the pipeline reaches Done (spec.md §4.7).
type Catalogs struct {
	mu            sync.RWMutex
	sids          map[string]PrincipalRef   // objectSid -> {sam, class}
	domainFQDN    map[string]string         // domain SID -> dotted FQDN
	domainNetBIOS map[string]string         // domain SID -> NetBIOS name
	gpoGUIDs      map[string]string         // GPO DN -> objectGUID (no braces, lowercase)
	members       map[string]PrincipalRef   // object DN -> {sam, class} for membership/ContainedBy lookups
	sidByDN       map[string]string         // object DN -> objectSid
	computers     map[string]string         // lowercased dNSHostName or sAMAccountName(no $) -> SID
	certTemplates map[string]string         // cert template display name -> DN
}

// NewCatalogs returns an empty set of catalogs.
func NewCatalogs() *Catalogs {
	return &Catalogs{
		sids:          make(map[string]PrincipalRef),
		domainFQDN:    make(map[string]string),
		domainNetBIOS: make(map[string]string),
		gpoGUIDs:      make(map[string]string),
		members:       make(map[string]PrincipalRef),
		sidByDN:       make(map[string]string),
		computers:     make(map[string]string),
		certTemplates: make(map[string]string),
	}
}

// AddPrincipal records a user/group/computer's SID and DN so later
// categories can resolve membership and ownership by either key.
func (c *Catalogs) AddPrincipal(sid, dn, sam, class string) {
	if sid == "" {
		return
	}
	ref := PrincipalRef{SAMAccountName: sam, Class: class}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sids[sid] = ref
	if dn != "" {
		c.members[dn] = ref
		c.sidByDN[dn] = sid
	}
}

// ResolvePrincipalClass implements acl.ResolvePrincipalType: it looks a SID
// up in the catalog and returns its class, or "Unknown" if never seen.
func (c *Catalogs) ResolvePrincipalClass(sid string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ref, ok := c.sids[sid]; ok && ref.Class != "" {
		return ref.Class
	}
	return "Unknown"
}

// ResolveSIDName resolves a SID to a display name for security-descriptor
// owner/group decoding: a well-known name if fixed, else the catalog's
// sAMAccountName for that SID, else "".
func (c *Catalogs) ResolveSIDName(sid string) string {
	if name := analyze.WellKnownSIDName(sid); name != "" {
		return name
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sids[sid].SAMAccountName
}

// SIDLookup returns a sid -> sAMAccountName snapshot of the catalog, for the
// dump file's meta.sid_lookup table (spec.md §6; mirrors the original
// tool's self.sidLT).
func (c *Catalogs) SIDLookup() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.sids))
	for sid, ref := range c.sids {
		out[sid] = ref.SAMAccountName
	}
	return out
}

// ResolveMemberDN resolves a member/memberOf DN to its SID and class, used
// by the Graph Assembler to turn a group's raw `member` DN list into
// {ObjectIdentifier, ObjectType} pairs.
func (c *Catalogs) ResolveMemberDN(dn string) (sid, class string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ref, found := c.members[dn]
	if !found {
		return "", "", false
	}
	return c.sidByDN[dn], ref.Class, true
}

// AddDomain records a domain object's SID alongside the FQDN/NetBIOS pair
// derived from its DN and name attribute.
func (c *Catalogs) AddDomain(sid, fqdn, netbios string) {
	if sid == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if fqdn != "" {
		c.domainFQDN[sid] = fqdn
	}
	if netbios != "" {
		c.domainNetBIOS[sid] = netbios
	}
}

// DomainFQDN resolves a domain SID to its dotted FQDN, or "" if unknown.
func (c *Catalogs) DomainFQDN(sid string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.domainFQDN[sid]
}

// DomainNetBIOS resolves a domain SID to its NetBIOS name, or "" if unknown.
func (c *Catalogs) DomainNetBIOS(sid string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.domainNetBIOS[sid]
}

// AddGPO records a GPO container's DN -> objectGUID binding, resolved later
// when an OU's gPLink names the GPO by DN.
func (c *Catalogs) AddGPO(dn, guid string) {
	if dn == "" || guid == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gpoGUIDs[strings.ToLower(dn)] = analyze.NormalizeGUID(guid)
}

// ResolveGPO resolves a GPO container DN to its objectGUID.
func (c *Catalogs) ResolveGPO(dn string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	guid, ok := c.gpoGUIDs[strings.ToLower(dn)]
	return guid, ok
}

// AddComputer indexes a computer by every name an SPN might reference it by
// (dNSHostName and the sAMAccountName with its trailing "$" stripped), for
// SPNTargets resolution (spec.md §4.6).
func (c *Catalogs) AddComputer(sid, dnsHostName, sam string) {
	if sid == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if dnsHostName != "" {
		c.computers[strings.ToLower(dnsHostName)] = sid
	}
	if sam != "" {
		c.computers[strings.ToLower(strings.TrimSuffix(sam, "$"))] = sid
	}
}

// ResolveComputer resolves a hostname (from an SPN's host portion) to a
// computer's SID.
func (c *Catalogs) ResolveComputer(host string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sid, ok := c.computers[strings.ToLower(host)]
	return sid, ok
}

// AddCertTemplate records a certificate template's display name -> DN
// binding, resolved when an Enterprise CA's certificateTemplates names
// templates by name rather than DN.
func (c *Catalogs) AddCertTemplate(name, dn string) {
	if name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.certTemplates[name] = dn
}

// ResolveCertTemplate resolves a template display name to its DN.
func (c *Catalogs) ResolveCertTemplate(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dn, ok := c.certTemplates[name]
	return dn, ok
}

// ParentDN returns the syntactic parent of a distinguished name: the DN
// with its leftmost RDN component removed. Used for ContainedBy resolution
// instead of a dedicated catalog, since the relationship is derivable
// directly from the DN (spec.md §4.6).
func ParentDN(dn string) string {
	idx := strings.Index(dn, ",")
	if idx < 0 {
		return ""
	}
	return dn[idx+1:]
}

// FQDNFromDN converts a DN's trailing DC= components into a dotted domain
// name, e.g. "CN=foo,DC=corp,DC=local" -> "corp.local". Grounded on
// original_source/ad_ldap_dumper.py's dn2domain helper.
func FQDNFromDN(dn string) string {
	var parts []string
	for _, rdn := range strings.Split(dn, ",") {
		rdn = strings.TrimSpace(rdn)
		if strings.HasPrefix(strings.ToUpper(rdn), "DC=") {
			parts = append(parts, rdn[3:])
		}
	}
	return strings.Join(parts, ".")
}
