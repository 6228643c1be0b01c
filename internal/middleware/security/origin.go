package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"expensereport/internal/log"
)

// Guard resolves client addresses and rejects cross-origin writes. The API
// listens on loopback, so a browser tab on another origin must not be able to
// mutate the report.
type Guard struct {
	trustedProxies []*net.IPNet
	logger         *log.Logger
	rejected       atomic.Int64
}

// NewGuard creates a guard that trusts forwarding headers from loopback only.
func NewGuard(logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Discard()
	}
	return &Guard{
		trustedProxies: []*net.IPNet{
			parseCIDR("127.0.0.0/8"),
			parseCIDR("::1/128"),
		},
		logger: logger.WithComponent(log.ComponentSecurity),
	}
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// ExtractClientIP returns the peer address, or the forwarded client when the
// peer is a trusted proxy.
func (g *Guard) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil || !g.isTrustedProxy(parsedDirectIP) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(clientIP) != nil {
			return clientIP
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

func (g *Guard) isTrustedProxy(ip net.IP) bool {
	for _, network := range g.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func safeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}

// SameOrigin rejects unsafe requests whose Origin header names another host.
// Requests without an Origin header (curl, scripts) pass.
func (g *Guard) SameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !safeMethod(r.Method) {
			if origin := r.Header.Get("Origin"); origin != "" {
				u, err := url.Parse(origin)
				if err != nil || !strings.EqualFold(u.Host, r.Host) {
					g.rejected.Add(1)
					g.logger.WarnContext(r.Context(), "Cross-origin write rejected",
						"origin", origin, log.FieldPath, r.URL.Path, log.FieldClientIP, g.ExtractClientIP(r))
					http.Error(w, "cross-origin request rejected", http.StatusForbidden)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Rejected is the number of cross-origin writes refused so far.
func (g *Guard) Rejected() int64 {
	return g.rejected.Load()
}
