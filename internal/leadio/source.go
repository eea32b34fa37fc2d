// Package leadio loads lead lists and writes resolution output.
package leadio

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-resolver/internal/resilience"
)

// SourceOptions configures remote lead-file downloads.
type SourceOptions struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Retry      resilience.RetryConfig
}

func (o SourceOptions) withDefaults() SourceOptions {
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = "lead-resolver/1.0"
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Retry.MaxAttempts == 0 {
		o.Retry = resilience.DefaultRetryConfig()
		o.Retry.AttemptTimeout = o.Timeout
	}
	return o
}

// Open returns the contents of location: a local path, an http(s) URL or an
// ftp URL. The caller closes the reader.
func Open(ctx context.Context, location string, opts SourceOptions) (io.ReadCloser, error) {
	opts = opts.withDefaults()
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return openHTTP(ctx, location, opts)
	case strings.HasPrefix(location, "ftp://"):
		return openFTP(ctx, location, opts)
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, eris.Wrapf(err, "leadio: open %s", location)
		}
		return f, nil
	}
}

func openHTTP(ctx context.Context, rawURL string, opts SourceOptions) (io.ReadCloser, error) {
	retry := opts.Retry
	retry.OnRetry = resilience.RetryLogger("leadio", "download")

	body, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "leadio: create request")
		}
		req.Header.Set("User-Agent", opts.UserAgent)

		resp, err := opts.HTTPClient.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "leadio: download")
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			err := eris.Errorf("leadio: unexpected status %d from %s", resp.StatusCode, rawURL)
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "leadio: read body")
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// parseFTPURL extracts host:port, path and credentials from an ftp URL.
// Missing credentials mean anonymous login.
func parseFTPURL(rawURL string) (host, path, user, pass string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", "", "", eris.Wrap(err, "leadio: parse ftp url")
	}
	if u.Scheme != "ftp" {
		return "", "", "", "", eris.Errorf("leadio: expected ftp scheme, got %q", u.Scheme)
	}

	host = u.Host
	if _, _, splitErr := net.SplitHostPort(host); splitErr != nil {
		host = net.JoinHostPort(host, "21")
	}
	if u.Path == "" || u.Path == "/" {
		return "", "", "", "", eris.New("leadio: empty path in ftp url")
	}

	user, pass = "anonymous", "anonymous@"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	return host, u.Path, user, pass, nil
}

// ftpConnReader closes the transfer and the control connection together.
type ftpConnReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpConnReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpConnReader) Close() error {
	respErr := r.resp.Close()
	quitErr := r.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "leadio: close ftp response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "leadio: quit ftp connection")
	}
	return nil
}

func openFTP(ctx context.Context, rawURL string, opts SourceOptions) (io.ReadCloser, error) {
	host, path, user, pass, err := parseFTPURL(rawURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("leadio: ftp connecting", zap.String("host", host), zap.String("path", path))

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "leadio: ftp dial")
	}
	if err := conn.Login(user, pass); err != nil {
		_ = conn.Quit()
		return nil, eris.Wrap(err, "leadio: ftp login")
	}
	resp, err := conn.Retr(path)
	if err != nil {
		_ = conn.Quit()
		return nil, eris.Wrap(err, "leadio: ftp retrieve")
	}
	return &ftpConnReader{resp: resp, conn: conn}, nil
}
