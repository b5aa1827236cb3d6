package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ForwardedForHeader заголовок с цепочкой адресов, добавленных прокси
const ForwardedForHeader = "X-Forwarded-For"

// ClientIPResolver определяет адрес клиента для ключа ограничителя
// X-Forwarded-For учитывается только если соединение пришло от доверенного прокси
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver принимает адреса и подсети доверенных прокси ("10.0.0.0/8", "192.168.1.10")
// Пустой список означает, что ключом всегда служит адрес соединения
func NewClientIPResolver(trustedProxies []string) (*ClientIPResolver, error) {
	prefixes := make([]netip.Prefix, 0, len(trustedProxies))
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return &ClientIPResolver{trusted: prefixes}, nil
}

// ClientIP возвращает адрес клиента
// Цепочка X-Forwarded-For читается справа налево до первого адреса не из доверенных прокси:
// левее него значения задает сам клиент
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	remote := remoteHost(r.RemoteAddr)
	addr, err := netip.ParseAddr(remote)
	if err != nil {
		return remote
	}
	addr = addr.Unmap()
	if !c.isTrusted(addr) {
		return addr.String()
	}

	client := addr
	hops := forwardedHops(r.Header.Values(ForwardedForHeader))
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(hops[i])
		if err != nil {
			// мусор в цепочке: остаемся на последнем доверенном звене
			break
		}
		client = hop.Unmap()
		if !c.isTrusted(client) {
			break
		}
	}

	return client.String()
}

func (c *ClientIPResolver) isTrusted(addr netip.Addr) bool {
	if c == nil {
		return false
	}
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func forwardedHops(values []string) []string {
	hops := make([]string, 0, len(values))
	for _, value := range values {
		for _, hop := range strings.Split(value, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
