package ipinfo

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pion/stun/v3"
)

// Unavailable is recorded when no source could produce a public address.
const Unavailable = "N/A"

// Lookup resolves the external IP of the active network path. It asks
// the HTTPS echo endpoint first and falls back to a STUN binding
// request; any failure degrades to the Unavailable sentinel instead of
// an error so a dead lookup never blocks logging a run.
func Lookup(ctx context.Context, echoURL string, stunServers []string, timeout time.Duration) string {
	if ip, err := fetchEcho(ctx, echoURL, timeout); err == nil {
		return ip
	}
	if ip, err := fetchSTUN(ctx, stunServers, timeout); err == nil {
		return ip
	}
	return Unavailable
}

func fetchEcho(ctx context.Context, echoURL string, timeout time.Duration) (string, error) {
	if echoURL == "" {
		return "", fmt.Errorf("no echo URL configured")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, echoURL, nil)
	if err != nil {
		return "", err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("request failed: %s", res.Status)
	}

	// Echo endpoints return a bare address; cap the read so an
	// unexpected HTML error page cannot balloon.
	body, err := io.ReadAll(io.LimitReader(res.Body, 256))
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("echo endpoint returned %q", ip)
	}
	return ip, nil
}

func fetchSTUN(ctx context.Context, servers []string, timeout time.Duration) (string, error) {
	var lastErr error
	for _, server := range servers {
		host, err := stunHost(ctx, server, timeout)
		if err != nil {
			lastErr = err
			continue
		}
		return host, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no STUN servers configured")
	}
	return "", lastErr
}

func stunHost(ctx context.Context, server string, timeout time.Duration) (string, error) {
	uriStr := strings.TrimSpace(server)
	if uriStr == "" {
		return "", fmt.Errorf("empty STUN server")
	}
	if !strings.HasPrefix(uriStr, "stun:") {
		uriStr = "stun:" + uriStr
	}

	uri, err := stun.ParseURI(uriStr)
	if err != nil {
		return "", err
	}

	client, err := stun.DialURI(uri, &stun.DialConfig{})
	if err != nil {
		return "", err
	}
	defer client.Close()

	msg := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	result := make(chan stun.XORMappedAddress, 1)
	fail := make(chan error, 1)

	go func() {
		var addr stun.XORMappedAddress
		err := client.Do(msg, func(res stun.Event) {
			if res.Error != nil {
				fail <- res.Error
				return
			}
			if err := addr.GetFrom(res.Message); err != nil {
				fail <- err
				return
			}
			result <- addr
		})
		if err != nil {
			fail <- err
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case addr := <-result:
		return addr.IP.String(), nil
	case err := <-fail:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
