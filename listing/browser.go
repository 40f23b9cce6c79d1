package listing

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"webhdfs-ls/clients"
	"webhdfs-ls/models"
)

type gatewayClient interface {
	RunCommand(ctx context.Context, op clients.Operation, path string, extra map[string]string) (string, error)
}

// connState is the connectivity latch: Open moves it from connUnverified to
// exactly one of the other two states, and it is never rewritten afterwards.
type connState int

const (
	connUnverified connState = iota
	connConnected
	connUnreachable
)

// Browser renders directory listings fetched from a WebHDFS gateway
type Browser struct {
	gateway    gatewayClient
	longFormat bool
	maxLines   int
	state      connState
}

// Dependencies configuration for creating a browser
type Dependencies struct {
	Gateway gatewayClient
}

// Config holds display configuration for the browser
type Config struct {
	LongFormat bool
	MaxLines   int
}

// NewBrowser creates a new instance of the listing browser
func NewBrowser(d *Dependencies, cfg Config) *Browser {
	return &Browser{
		gateway:    d.Gateway,
		longFormat: cfg.LongFormat,
		maxLines:   cfg.MaxLines,
	}
}

// Open verifies connectivity by fetching the status of the gateway root.
// A failure latches the browser: every later call returns its empty default
// without another network attempt.
func (b *Browser) Open(ctx context.Context) {
	if _, err := b.statDirectory(ctx, "/"); err != nil {
		log.Printf("cannot open WebHDFS connection for /: %v", err)
		b.state = connUnreachable
		return
	}
	log.Println("successfully created WebHDFS connection")
	b.state = connConnected
}

// Connected reports whether the connectivity self-test succeeded.
func (b *Browser) Connected() bool {
	return b.state == connConnected
}

// ListAll lists the children of path, one line per entry in gateway order.
// Request and decode failures are logged and the output accumulated so far
// is returned; listing never fails the caller.
func (b *Browser) ListAll(ctx context.Context, path string) string {
	var all strings.Builder
	if b.state == connUnreachable {
		return all.String()
	}

	body, err := b.gateway.RunCommand(ctx, clients.OpListStatus, path, nil)
	if err != nil {
		log.Printf("listAll %s: %v", path, err)
		return all.String()
	}

	entries, err := models.DecodeListing(body)
	if err != nil {
		log.Printf("listAll %s: %v", path, err)
		return all.String()
	}

	for i := range entries {
		if b.maxLines > 0 && i >= b.maxLines {
			log.Printf("listAll %s: truncated at %d lines", path, b.maxLines)
			break
		}
		all.WriteString(b.listOne(path, &entries[i]))
		all.WriteByte('\n')
	}
	return all.String()
}

// IsDirectory reports whether path is a directory on the gateway. Every
// request or decode failure is logged and reported as false.
func (b *Browser) IsDirectory(ctx context.Context, path string) bool {
	if b.state == connUnreachable {
		return false
	}

	isDir, err := b.statDirectory(ctx, path)
	if err != nil {
		log.Printf("isDirectory %s: %v", path, err)
		return false
	}
	return isDir
}

// statDirectory fetches the single status of path and compares its type to
// "DIRECTORY" with exact case. The permission column uses a case-insensitive
// comparison instead; the two checks are intentionally separate.
func (b *Browser) statDirectory(ctx context.Context, path string) (bool, error) {
	body, err := b.gateway.RunCommand(ctx, clients.OpGetFileStatus, path, nil)
	if err != nil {
		return false, err
	}

	status, err := models.DecodeSingleStatus(body)
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}
	return status.Type == "DIRECTORY", nil
}

func (b *Browser) listOne(path string, fs *models.FileStatus) string {
	if !b.longFormat {
		return fs.PathSuffix
	}

	replication := "-"
	if fs.Replication != 0 {
		replication = strconv.Itoa(fs.Replication)
	}

	fullPath := path + "/" + fs.PathSuffix
	if len(path) == 1 {
		fullPath = path + fs.PathSuffix
	}

	return fmt.Sprintf("%s\t %s\t %s\t %s\t %d\t %s GMT\t %s",
		fs.PermissionString(),
		replication,
		fs.Owner,
		fs.Group,
		fs.Length,
		formatModTime(fs.ModificationTime),
		fullPath)
}

func formatModTime(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02 15:04")
}
