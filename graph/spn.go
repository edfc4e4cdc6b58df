package graph

import "strings"

// spnHostPort splits "service/host:port" (port optional) into its service,
// host, and port components. Grounded on the MS-SPN class/instance/name
// grammar; only the pieces the Graph Assembler needs are extracted.
func spnHostPort(spn string) (service, host string, port int, ok bool) {
	slash := strings.Index(spn, "/")
	if slash < 0 {
		return "", "", 0, false
	}
	service = spn[:slash]
	rest := spn[slash+1:]
	if colon := strings.Index(rest, ":"); colon >= 0 {
		host = rest[:colon]
		port = atoiDefault(rest[colon+1:], 0)
	} else {
		host = rest
	}
	if dot := strings.Index(host, "/"); dot >= 0 {
		host = host[:dot]
	}
	return service, host, port, host != ""
}

func atoiDefault(s string, def int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return def
	}
	return n
}

// defaultMSSQLPort is the port assumed for a MSSQLSvc SPN that names no
// explicit instance port (spec.md §4.6: "default port 1433").
const defaultMSSQLPort = 1433
