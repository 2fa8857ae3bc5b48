package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// chunkSize is the read/write unit of the transfer loop.
const chunkSize = 32 * 1024

// Progress reports the state of a single file transfer.
type Progress struct {
	// File is the base name of the destination file.
	File string

	// Completed is the number of bytes present in the destination, including
	// bytes that were already on disk before a resumed transfer.
	Completed int64

	// Total is the expected final size, or Completed's starting value when
	// the registry does not report a content length.
	Total int64
}

// DownloadFile streams url into dest. With offset > 0 a byte range starting
// at offset is requested; a 206 response is written after the existing bytes,
// any other 2xx response replaces the file. On failure the partial file is
// left in place so the next run can resume from its length.
func (c *Client) DownloadFile(ctx context.Context, url, dest string, offset int64, progress func(Progress)) error {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := c.content.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrDownload, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: status %d", ErrDownload, url, resp.StatusCode)
	}

	partial := resp.StatusCode == http.StatusPartialContent && offset > 0
	f, start, err := openDestination(dest, offset, partial)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, dest, err)
	}
	if !partial && offset > 0 {
		c.logger.Warn("registry ignored range request, restarting transfer", "url", url, "offset", offset)
	}

	p := Progress{File: filepath.Base(dest), Completed: start, Total: start}
	if resp.ContentLength > 0 {
		p.Total += resp.ContentLength
	}
	if progress != nil {
		progress(p)
	}

	if err := stream(f, resp.Body, &p, progress); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, dest, err)
	}

	c.logger.Debug("transfer complete", "file", p.File, "bytes", p.Completed, "resumed_from", start)
	return nil
}

func openDestination(dest string, offset int64, partial bool) (*os.File, int64, error) {
	if !partial {
		f, err := os.Create(dest)
		return f, 0, err
	}

	f, err := os.OpenFile(dest, os.O_WRONLY, 0o644)
	if err != nil {
		return nil, 0, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, offset, nil
}

// stream copies body into f one chunk at a time, reporting after each write.
func stream(f *os.File, body io.Reader, p *Progress, progress func(Progress)) error {
	buf := make([]byte, chunkSize)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return werr
			}
			p.Completed += int64(n)
			if progress != nil {
				progress(*p)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
