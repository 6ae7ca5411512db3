package pdsweb

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// downloadChunk is the copy buffer size for streaming bodies to disk.
const downloadChunk = 1 << 14

// Download streams the file at baseURL+remotePath to destPath. An existing
// destination file is the completion signal: it is left untouched and no
// checksum is verified. The body is written through a temp file so a failed
// transfer never leaves a half-written destination behind.
func (c *Client) Download(ctx context.Context, baseURL, remotePath, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}

	target, err := resolveURL(baseURL, remotePath)
	if err != nil {
		return err
	}

	resp, err := c.get(ctx, c.downloadClient, target)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp := destPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	buf := make([]byte, downloadChunk)
	if _, err := io.CopyBuffer(f, resp.Body, buf); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize %s: %w", destPath, err)
	}
	return nil
}

func resolveURL(baseURL, remotePath string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("bad base URL %s: %w", baseURL, err)
	}
	ref, err := url.Parse(remotePath)
	if err != nil {
		return "", fmt.Errorf("bad remote path %s: %w", remotePath, err)
	}
	return base.ResolveReference(ref).String(), nil
}
