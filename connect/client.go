package connect

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"adldap/analyze"

	"github.com/go-ldap/ldap/v3"
)

// SecurityType defines connection security type
type SecurityType int

const (
	SecurityNone             SecurityType = 0
	SecurityTLS              SecurityType = 1
	SecurityStartTLS         SecurityType = 2
	SecurityInsecureTLS      SecurityType = 3
	SecurityInsecureStartTLS SecurityType = 4
)

// BindMode selects the LDAP bind mechanism (spec.md §6).
type BindMode int

const (
	BindAnonymous BindMode = iota
	BindSimple
	BindNTLM
	BindNTLMHash
	BindSASLKerberos
	BindSASLExternal
)

// LoginName username type
type LoginName string

const (
	UserPrincipalName LoginName = analyze.DefaultLoginName
	SAMAccountName    LoginName = "sAMAccountName"
)

// Config is the connection configuration for a single directory bind.
// Kerberos and client-certificate material are supplied already resolved
// (ccache, tls.Certificate) — discovering them from the environment is an
// external collaborator's job, not this package's (spec.md §1).
type Config struct {
	Server      string             `mapstructure:"server"`
	Port        int                `mapstructure:"port"`
	BaseDN      string             `mapstructure:"baseDN"`
	Username    string             `mapstructure:"username"`
	Password    string             `mapstructure:"password"`
	NTLMHash    string             `mapstructure:"ntlmHash"` // "AAD3B...:31D6C..." pass-the-hash sentinel
	LoginName   LoginName          `mapstructure:"loginName"`
	Security    SecurityType       `mapstructure:"security"`
	BindMode    BindMode           `mapstructure:"bindMode"`
	Timeout     int                `mapstructure:"timeout"`
	SizeLimit   int                `mapstructure:"sizeLimit"`
	PagingDelaySeconds  int        `mapstructure:"pagingDelaySeconds"`  // sleep between pages of one search (spec.md §5)
	PagingJitterSeconds int        `mapstructure:"pagingJitterSeconds"` // additional Uniform[1..jitter] seconds
	KerberosCCache  KerberosCCache `mapstructure:"-"` // resolved ticket cache, for BindSASLKerberos
	ClientCert  *tls.Certificate   `mapstructure:"-"` // resolved client cert, for BindSASLExternal
}

// KerberosCCache is the subset of a gokrb5 credentials cache this package
// needs; defined here so connect doesn't otherwise depend on gokrb5 types
// outside krb5.go.
type KerberosCCache interface {
	DefaultPrincipal() (string, error)
}

func formatBindUsername(c *Config) (string, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return "", fmt.Errorf("LDAP username is not configured")
	}

	switch c.LoginName {
	case SAMAccountName:
		return username, nil
	default:
		return UserPrincipal(c.BaseDN, username)
	}
}

// dial opens the transport-level connection (plaintext, TLS, or StartTLS
// with version negotiation) without performing any bind.
func dial(c *Config) (*ldap.Conn, error) {
	if c.Server == "" {
		return nil, fmt.Errorf("%w: LDAP server is not configured", analyze.ErrConfigError)
	}

	scheme, port, baseTLSConf := securitySettings(c)
	url := fmt.Sprintf("%s://%s:%d", scheme, c.Server, port)

	timeout := time.Duration(c.Timeout) * time.Second
	if timeout == 0 {
		timeout = time.Duration(analyze.DefaultConnectionTimeout) * time.Second
	}
	dialer := &net.Dialer{Timeout: timeout}

	if baseTLSConf == nil {
		conn, err := ldap.DialURL(url, ldap.DialWithDialer(dialer))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", analyze.ErrTransportFailure, err)
		}
		return conn, nil
	}

	conn, err := dialWithTLSNegotiation(url, dialer, baseTLSConf, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analyze.ErrTransportFailure, err)
	}
	return conn, nil
}

// bind performs the authentication handshake selected by c.BindMode.
func bind(conn *ldap.Conn, c *Config) error {
	switch c.BindMode {
	case BindAnonymous:
		return conn.UnauthenticatedBind("")

	case BindSimple:
		username, err := formatBindUsername(c)
		if err != nil {
			return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
		}
		if err := conn.Bind(username, c.Password); err != nil {
			return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
		}
		return nil

	case BindNTLM:
		domain, user := splitNTLMUsername(c.Username)
		if err := conn.NTLMBind(domain, user, c.Password); err != nil {
			return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
		}
		return nil

	case BindNTLMHash:
		domain, user := splitNTLMUsername(c.Username)
		if err := conn.NTLMBindWithHash(domain, user, c.NTLMHash); err != nil {
			return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
		}
		return nil

	case BindSASLKerberos:
		return bindKerberos(conn, c)

	case BindSASLExternal:
		if c.ClientCert == nil {
			return fmt.Errorf("%w: SASL EXTERNAL bind requires a client certificate", analyze.ErrConfigError)
		}
		if err := conn.ExternalBind(); err != nil {
			return fmt.Errorf("%w: %v", analyze.ErrBindFailure, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown bind mode %d", analyze.ErrConfigError, c.BindMode)
	}
}

// splitNTLMUsername splits a "DOMAIN\user" string into its parts; a bare
// username is returned with an empty domain, letting the server use its
// own default domain.
func splitNTLMUsername(username string) (domain, user string) {
	if idx := strings.Index(username, `\`); idx >= 0 {
		return username[:idx], username[idx+1:]
	}
	return "", username
}

// securitySettings derives the dial scheme/port/base TLS config from the
// security mode. TLS version is negotiated separately in
// dialWithTLSNegotiation.
func securitySettings(c *Config) (string, int, *tls.Config) {
	scheme := "ldap"
	port := c.Port

	switch c.Security {
	case SecurityTLS, SecurityInsecureTLS:
		scheme = "ldaps"
		if port == 0 {
			port = 636
		}
	default:
		scheme = "ldap"
		if port == 0 {
			port = 389
		}
	}

	var tlsConf *tls.Config
	switch c.Security {
	case SecurityTLS, SecurityStartTLS:
		tlsConf = &tls.Config{ServerName: c.Server}
	case SecurityInsecureTLS, SecurityInsecureStartTLS:
		tlsConf = &tls.Config{ServerName: c.Server, InsecureSkipVerify: true}
	}
	if c.BindMode == BindSASLExternal && c.ClientCert != nil && tlsConf != nil {
		tlsConf.Certificates = []tls.Certificate{*c.ClientCert}
	}
	return scheme, port, tlsConf
}

type tlsVersionInfo struct {
	version uint16
	name    string
}

// dialWithTLSNegotiation attempts progressively older TLS versions so a
// legacy domain controller (2003/2008) still connects, preferring modern
// TLS first.
func dialWithTLSNegotiation(url string, dialer *net.Dialer, baseTLSConf *tls.Config, c *Config) (*ldap.Conn, error) {
	versionsToTry := []tlsVersionInfo{
		{tls.VersionTLS13, "TLS 1.3"},
		{tls.VersionTLS12, "TLS 1.2"},
		{tls.VersionTLS11, "TLS 1.1"},
		{tls.VersionTLS10, "TLS 1.0"},
	}

	var lastErr error
	for i, tlsVer := range versionsToTry {
		tlsConf := baseTLSConf.Clone()
		tlsConf.MinVersion = tlsVer.version
		if i < len(versionsToTry)-1 {
			tlsConf.MaxVersion = tlsVer.version
		}

		conn, err := ldap.DialURL(url, ldap.DialWithDialer(dialer), ldap.DialWithTLSConfig(tlsConf))
		if err == nil {
			if c.Security == SecurityStartTLS || c.Security == SecurityInsecureStartTLS {
				if startTLSErr := conn.StartTLS(tlsConf); startTLSErr != nil {
					conn.Close()
					lastErr = fmt.Errorf("TLS %s handshake failed: %w", tlsVer.name, startTLSErr)
					continue
				}
			}
			return conn, nil
		}

		lastErr = err
		if !isTLSError(err) {
			break
		}
	}

	return nil, fmt.Errorf("TLS version negotiation failed (tried TLS 1.3, 1.2, 1.1, 1.0): %w", lastErr)
}

func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"tls", "handshake failure", "protocol version",
		"unsupported protocol", "no supported versions", "connection reset by peer",
	} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
